package email

// PreviewData holds sample variables for every template, keyed by template
// name, so each one can be rendered without a real recipient.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserEmail": "luke@rebellion.org",
	},
}
