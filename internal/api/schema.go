package api

// JSON schemas for the response shapes the client relies on.
const (
	envelopeSchema = `{
		"type": "object",
		"properties": {
			"success": {"type": "boolean"},
			"message": {"type": "string"}
		}
	}`

	titlesSchema = `{
		"type": "object",
		"required": ["titles"],
		"properties": {
			"titles": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["title"],
					"properties": {
						"jobTitleId": {"type": ["string", "integer"]},
						"title": {"type": "string"},
						"isActive": {"type": "boolean"}
					}
				}
			}
		}
	}`

	jobTitleSchema = `{
		"type": "object",
		"required": ["jobTitle"],
		"properties": {
			"jobTitle": {"type": "object", "required": ["title"]}
		}
	}`

	applicationsSchema = `{
		"type": "object",
		"required": ["applications"],
		"properties": {
			"applications": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["applicationId"],
					"properties": {
						"applicationId": {"type": ["string", "integer"]},
						"status": {"type": "string"},
						"personalInfo": {"type": "object"}
					}
				}
			}
		}
	}`

	userSchema = `{
		"type": "object",
		"required": ["user"],
		"properties": {
			"user": {"type": "object"}
		}
	}`

	statsSchema = `{
		"type": "object",
		"required": ["totalApplications"],
		"properties": {
			"totalApplications": {"type": "integer"}
		}
	}`
)
