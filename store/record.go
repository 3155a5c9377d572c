package store

import "encoding/json"

// UserRecord is the sole persisted entity. It is stored as JSON under the
// key derived from Username.
//
// JWTVersion starts at 1 and never decreases; JWTSecret changes if and only
// if JWTVersion is incremented. UserID is assigned at registration and is
// stable across renames.
type UserRecord struct {
	UserID       string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    int64  `json:"created_at"`
	LastLogin    int64  `json:"last_login,omitempty"`
	JWTSecret    string `json:"jwt_secret"`
	JWTVersion   uint32 `json:"jwt_version"`
}

// Clone returns a deep copy of the record.
func (u *UserRecord) Clone() *UserRecord {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}

func encodeUserRecord(record *UserRecord) ([]byte, error) {
	return json.Marshal(record)
}

func decodeUserRecord(data []byte) (*UserRecord, error) {
	record := &UserRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, err
	}
	return record, nil
}
