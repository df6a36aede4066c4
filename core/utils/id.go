package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateID returns a short request-scoped identifier.
func GenerateID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 12)
	if err != nil {
		return ""
	}
	return id
}
