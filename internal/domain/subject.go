package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

type SubjectKind int

const (
	SubjectUnknown SubjectKind = iota
	SubjectUser
	SubjectAdmin
)

func (k SubjectKind) String() string {
	switch k {
	case SubjectUser:
		return "user"
	case SubjectAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

var ErrInvalidSubject = errors.New("invalid subject")

// Subject is the identity a token asserts: a stored user's numeric id or the
// fixed admin principal. In JSON it is a bare number or a bare string.
type Subject struct {
	Kind   SubjectKind
	UserID int64
	Admin  string
}

func UserSubject(id int64) Subject {
	return Subject{Kind: SubjectUser, UserID: id}
}

func AdminSubject(username string) Subject {
	return Subject{Kind: SubjectAdmin, Admin: username}
}

func (s Subject) IsUser() bool  { return s.Kind == SubjectUser }
func (s Subject) IsAdmin() bool { return s.Kind == SubjectAdmin }

// Valid reports whether s carries a usable identity.
func (s Subject) Valid() bool {
	switch s.Kind {
	case SubjectUser:
		return s.UserID > 0
	case SubjectAdmin:
		return s.Admin != ""
	default:
		return false
	}
}

func (s Subject) String() string {
	switch s.Kind {
	case SubjectUser:
		return "user:" + strconv.FormatInt(s.UserID, 10)
	case SubjectAdmin:
		return "admin:" + s.Admin
	default:
		return "unknown"
	}
}

func (s Subject) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SubjectUser:
		return []byte(strconv.FormatInt(s.UserID, 10)), nil
	case SubjectAdmin:
		return json.Marshal(s.Admin)
	default:
		return nil, ErrInvalidSubject
	}
}

func (s *Subject) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrInvalidSubject
	}

	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSubject, err)
		}
		*s = AdminSubject(name)
	} else {
		id, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSubject, err)
		}
		*s = UserSubject(id)
	}

	if !s.Valid() {
		return ErrInvalidSubject
	}
	return nil
}
