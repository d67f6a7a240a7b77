package domain

import (
	"fmt"
	"strings"
	"time"
)

type EntryType string

const (
	EntryNormal  EntryType = "normal"
	EntryHeading EntryType = "heading"
)

func (t EntryType) Valid() bool {
	return t == EntryNormal || t == EntryHeading
}

type ColorKey string

const (
	ColorDefault ColorKey = "default"
	ColorRed     ColorKey = "red"
	ColorGreen   ColorKey = "green"
	ColorBlue    ColorKey = "blue"
	ColorYellow  ColorKey = "yellow"
	ColorPurple  ColorKey = "purple"
)

func (c ColorKey) Valid() bool {
	switch c {
	case ColorDefault, ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPurple:
		return true
	default:
		return false
	}
}

type LogEntry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Type      EntryType `json:"type"`
	ColorKey  ColorKey  `json:"colorKey"`
	Timestamp time.Time `json:"timestamp"`
}

func (e LogEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(e.Content) == "" {
		return ErrEmptyContent
	}
	if !e.Type.Valid() {
		return fmt.Errorf("unknown entry type %q", e.Type)
	}
	if !e.ColorKey.Valid() {
		return fmt.Errorf("unknown color key %q", e.ColorKey)
	}
	return nil
}
