// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestIsValidSection(t *testing.T) {
	for _, key := range Sections() {
		if !IsValidSection(key) {
			t.Errorf("expected %q to be a valid section", key)
		}
	}
	if IsValidSection("sidebar") {
		t.Error("expected unknown section to be invalid")
	}
}

func TestSectionFieldsCoversAllSections(t *testing.T) {
	for _, key := range Sections() {
		if fields := SectionFields(key); len(fields) == 0 {
			t.Errorf("section %q has no field definition", key)
		}
	}
	if SectionFields("sidebar") != nil {
		t.Error("expected nil fields for unknown section")
	}
}

func TestValidateSectionData(t *testing.T) {
	if err := ValidateSectionData(SectionHero, map[string]string{
		"title":    "Welcome to Intravvel",
		"subtitle": "Your journey begins here",
	}); err != nil {
		t.Errorf("unexpected error for valid hero payload: %v", err)
	}

	if err := ValidateSectionData(SectionHero, map[string]string{"heading": "x"}); err == nil {
		t.Error("expected error for hero payload with about field")
	}

	if err := ValidateSectionData("sidebar", nil); err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestEncodeDecodeSectionData(t *testing.T) {
	data := map[string]string{"address": "123 Travel Street", "phone": "+1 234 567 8900"}

	raw, err := EncodeSectionData(data)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got := DecodeSectionData(raw)
	if len(got) != len(data) {
		t.Fatalf("decoded %d fields, want %d", len(got), len(data))
	}
	for k, v := range data {
		if got[k] != v {
			t.Errorf("field %q = %q, want %q", k, got[k], v)
		}
	}

	if got := DecodeSectionData("not json"); len(got) != 0 {
		t.Errorf("corrupt payload should decode to empty map, got %v", got)
	}
}
