package auth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateEntry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"duplicate entry", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice'"}, true},
		{"wrapped duplicate", fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1062}), true},
		{"other mysql error", &mysql.MySQLError{Number: 1452}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateEntry(tt.err); got != tt.want {
				t.Errorf("isDuplicateEntry(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
