package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to string) error {
	data := map[string]string{
		"UserEmail": to,
	}

	return c.SendEmail(
		to,
		"Welcome to the Star Wars API",
		TemplateWelcome,
		data,
	)
}
