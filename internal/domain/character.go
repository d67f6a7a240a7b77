package domain

type CharacterSheet struct {
	Name         string        `json:"name"`
	Image        string        `json:"image,omitempty"`
	Stats        string        `json:"stats"`
	StatsLabel   string        `json:"statsLabel"`
	CustomFields []CustomField `json:"customFields"`
}

type CustomField struct {
	ID         string `json:"id"`
	FieldName  string `json:"fieldName"`
	FieldValue string `json:"fieldValue"`
}
