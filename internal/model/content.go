// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Site content section keys. The set is closed: exactly one row may exist
// per key in the site_content table.
const (
	SectionHero        = "hero"
	SectionAbout       = "about"
	SectionContactInfo = "contact_info"
	SectionFooter      = "footer"
)

// Sections returns all valid content section keys.
func Sections() []string {
	return []string{SectionHero, SectionAbout, SectionContactInfo, SectionFooter}
}

// IsValidSection checks whether key names a known content section.
func IsValidSection(key string) bool {
	switch key {
	case SectionHero, SectionAbout, SectionContactInfo, SectionFooter:
		return true
	}
	return false
}

// ContentSection is a named freeform document fragment shown on the public
// site. Data maps field name to string value; the expected field set depends
// on the section key (see SectionFields).
type ContentSection struct {
	Section   string            `json:"section"`
	Data      map[string]string `json:"data"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// HeroContent is the payload shape for the hero section.
type HeroContent struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"background_image"`
}

// AboutContent is the payload shape for the about section.
type AboutContent struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// ContactInfoContent is the payload shape for the contact_info section.
type ContactInfoContent struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// FooterContent is the payload shape for the footer section.
type FooterContent struct {
	Copyright   string `json:"copyright"`
	Description string `json:"description"`
}

// SectionFields returns the field names a section's payload may carry.
// Unknown keys return nil.
func SectionFields(key string) []string {
	switch key {
	case SectionHero:
		return []string{"title", "subtitle", "background_image"}
	case SectionAbout:
		return []string{"heading", "content"}
	case SectionContactInfo:
		return []string{"address", "phone", "email"}
	case SectionFooter:
		return []string{"copyright", "description"}
	}
	return nil
}

// ValidateSectionData rejects payload fields that do not belong to the
// section's shape. The payload replaces the stored row wholesale on upsert,
// so a stray field would otherwise persist silently.
func ValidateSectionData(key string, data map[string]string) error {
	fields := SectionFields(key)
	if fields == nil {
		return fmt.Errorf("unknown content section %q", key)
	}
	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		allowed[f] = true
	}
	for f := range data {
		if !allowed[f] {
			return fmt.Errorf("field %q is not valid for section %q", f, key)
		}
	}
	return nil
}

// EncodeSectionData serializes a payload map for storage.
func EncodeSectionData(data map[string]string) (string, error) {
	if data == nil {
		data = map[string]string{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding section data: %w", err)
	}
	return string(b), nil
}

// DecodeSectionData parses a stored payload. Corrupt rows decode to an
// empty map rather than failing the whole listing.
func DecodeSectionData(raw string) map[string]string {
	data := make(map[string]string)
	if raw == "" {
		return data
	}
	_ = json.Unmarshal([]byte(raw), &data)
	return data
}
