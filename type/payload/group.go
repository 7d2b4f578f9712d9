package payload

type CreateGroupPayload struct {
	Name string `json:"name" validate:"required"`
}
