package models

// User is a room participant.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Room is the chat room the client currently has open.
type Room struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Participants []*User `json:"participants"`
}
