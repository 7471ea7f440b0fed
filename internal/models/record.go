// Package models holds the wire-level data types exchanged with the remote
// directory service.
package models

// Record is one user entity owned by the remote directory. The id is
// remote-assigned; the client never invents one.
type Record struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// RecordFields is the editable subset of a Record. The avatar is managed by
// the remote service and is never written back.
type RecordFields struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Fields extracts the editable subset of r.
func (r Record) Fields() RecordFields {
	return RecordFields{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
}

// UserPage is one page of the directory listing as reported by the remote
// service.
type UserPage struct {
	Records    []Record
	TotalPages int
}
