package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
	MaxUsernameLen = 64
	MaxTitleLen    = 255
	MaxNameLen     = 128
	MaxCommentLen  = 64 * 1024
)

// NewUser checks the fields of an account created from the users admin page.
func NewUser(login, password, email string) error {
	errs := []error{Username(login), Password(password)}
	if email != "" {
		errs = append(errs, Email(email))
	}
	return errors.Join(errs...)
}

func Password(password string) error {
	l := len(password)
	switch {
	case l == 0:
		return errors.New("empty password")
	case l < MinPasswordLen:
		return fmt.Errorf("password too short; min %d characters", MinPasswordLen)
	case l > MaxPasswordLen:
		return fmt.Errorf("password too long; max %d characters", MaxPasswordLen)
	}
	return nil
}

func Email(email string) error {
	if len(email) == 0 {
		return errors.New("empty email")
	}
	_, err := mail.ParseAddress(email)

	return err
}

func Username(username string) error {
	if l := len(username); l == 0 {
		return errors.New("empty username")
	} else if l > MaxUsernameLen {
		return fmt.Errorf("username too long; max %d characters", MaxUsernameLen)
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return errors.New("username must not contain whitespace")
	}
	return nil
}

func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("empty title")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return fmt.Errorf("title too long; max %d characters", MaxTitleLen)
	}
	return nil
}

func CategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("empty category name")
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("category name too long; max %d characters", MaxNameLen)
	}
	return nil
}

// Comment checks the author and body of a submitted comment.
func Comment(author, content string) error {
	var errs []error
	if strings.TrimSpace(author) == "" {
		errs = append(errs, errors.New("empty author"))
	} else if utf8.RuneCountInString(author) > MaxNameLen {
		errs = append(errs, fmt.Errorf("author too long; max %d characters", MaxNameLen))
	}
	if strings.TrimSpace(content) == "" {
		errs = append(errs, errors.New("empty comment"))
	} else if len(content) > MaxCommentLen {
		errs = append(errs, fmt.Errorf("comment too long; max %d bytes", MaxCommentLen))
	}
	return errors.Join(errs...)
}

// URL accepts absolute http and https urls only.
func URL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url has no host")
	}
	return nil
}
