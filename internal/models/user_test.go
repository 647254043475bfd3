package models

import "testing"

func TestAuthorFrom(t *testing.T) {
	tests := []struct {
		name        string
		uid         string
		displayName string
		want        User
	}{
		{"full name", "u1", "Max Payne", User{ID: "u1", Firstname: "Max", Lastname: "Payne"}},
		{"three part name splits once", "u2", "Ada Lovelace King", User{ID: "u2", Firstname: "Ada", Lastname: "Lovelace King"}},
		{"single name", "u3", "Cher", User{ID: "u3", Firstname: "Cher", Lastname: ""}},
		{"no display name", "u4", "", User{ID: "u4", Firstname: "Unknown", Lastname: ""}},
		{"blank display name", "u5", "   ", User{ID: "u5", Firstname: "Unknown", Lastname: ""}},
		{"no identity at all", "", "", User{ID: UnknownUserID, Firstname: "Unknown", Lastname: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuthorFrom(tt.uid, tt.displayName)
			if got != tt.want {
				t.Errorf("AuthorFrom(%q, %q) = %+v, want %+v", tt.uid, tt.displayName, got, tt.want)
			}
		})
	}
}

func TestPostSubmittable(t *testing.T) {
	p := Post{Title: "   "}
	if p.Submittable() {
		t.Error("blank title should not be submittable")
	}
	p.Title = "Game Night"
	if !p.Submittable() {
		t.Error("non-empty title should be submittable")
	}
}
