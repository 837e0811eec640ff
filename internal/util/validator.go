package util

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks that the address looks like an email.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if len(email) > 128 {
		return fmt.Errorf("email too long, max 128 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format: %q", email)
	}
	return nil
}

// ValidateScore checks a score is within the 0-10 evaluation scale.
func ValidateScore(score float64) error {
	if score < 0 || score > 10 {
		return fmt.Errorf("score must be between 0 and 10, got %g", score)
	}
	return nil
}

// ValidateQuestionText checks question text is present and of sane length.
func ValidateQuestionText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(text) > 2048 {
		return fmt.Errorf("question text too long, max 2048 characters")
	}
	return nil
}
