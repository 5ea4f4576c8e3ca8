package request

type BlockUserRequest struct {
	Blocked bool `json:"blocked"`
}
