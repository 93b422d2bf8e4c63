// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{MessageStatusNew, MessageStatusRead, true},
		{MessageStatusNew, MessageStatusArchived, true},
		{MessageStatusRead, MessageStatusArchived, true},
		{MessageStatusRead, MessageStatusNew, false},
		{MessageStatusArchived, MessageStatusRead, false},
		{MessageStatusArchived, MessageStatusNew, false},
		{MessageStatusNew, MessageStatusNew, true},
		{MessageStatusRead, MessageStatusRead, true},
		{MessageStatusArchived, MessageStatusArchived, true},
		{"bogus", MessageStatusRead, false},
		{MessageStatusNew, "bogus", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestMessageDraftValidate(t *testing.T) {
	valid := MessageDraft{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Booking inquiry",
		Body:    "Do you have availability in June?",
	}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid draft, got errors: %v", errs)
	}

	bad := MessageDraft{Email: "not-an-email"}
	errs := bad.Validate()
	for _, field := range []string{"name", "email", "subject", "message"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected validation error for %q", field)
		}
	}
}
