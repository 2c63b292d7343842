package course

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		course  Course
		wantErr bool
	}{
		{"valid", Course{Title: "Go Basics", InstructorID: "i1"}, false},
		{"blank title", Course{Title: "   ", InstructorID: "i1"}, true},
		{"title too long", Course{Title: strings.Repeat("x", MaxTitleLength+1), InstructorID: "i1"}, true},
		{"missing instructor", Course{Title: "Go Basics"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.course.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestOwnedBy(t *testing.T) {
	c := Course{ID: "c1", Title: "Go", InstructorID: "i1"}
	if !c.OwnedBy("i1") {
		t.Fatal("owner should match")
	}
	if c.OwnedBy("i2") {
		t.Fatal("other instructor should not match")
	}
	if c.OwnedBy("") {
		t.Fatal("empty id should never own")
	}
}
