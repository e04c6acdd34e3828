package validator

import (
	"regexp"
	"sort"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// Error joins the messages in field order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, v[f])
	}
	return strings.Join(msgs, "; ")
}

var ethAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateSignup only requires both fields. Any non-empty username is
// accepted; long passwords are handled by the hasher.
func ValidateSignup(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if username == "" {
		errs.Add("username", "Username is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateLogin(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

// ValidateWeb3Signup leaves the signature alone: a registered address must be
// reported as taken whatever the signature looks like.
func ValidateWeb3Signup(message, ethAddress string) ValidationErrors {
	errs := make(ValidationErrors)

	if message == "" {
		errs.Add("message", "Message is required")
	}

	if ethAddress == "" {
		errs.Add("ethAddress", "Ethereum address is required")
	} else if !ethAddressRe.MatchString(ethAddress) {
		errs.Add("ethAddress", "Invalid Ethereum address")
	}

	return errs
}

func ValidatePost(title, text string) ValidationErrors {
	errs := make(ValidationErrors)

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 200 {
		errs.Add("title", "Title is too long")
	}

	if strings.TrimSpace(text) == "" {
		errs.Add("text", "Text is required")
	}

	return errs
}

func ValidateUpload(htmlContent string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(htmlContent) == "" {
		errs.Add("htmlContent", "HTML content is required")
	}

	return errs
}
