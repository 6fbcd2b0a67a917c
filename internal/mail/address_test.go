package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFrom(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantName  string
		wantEmail string
	}{
		{
			name:      "quoted display name",
			header:    `"John Smith" <john.smith@example.com>`,
			wantName:  "John Smith",
			wantEmail: "john.smith@example.com",
		},
		{
			name:      "unquoted display name",
			header:    "Marketing Team <marketing@company.com>",
			wantName:  "Marketing Team",
			wantEmail: "marketing@company.com",
		},
		{
			name:      "bare address",
			header:    "noreply@example.com",
			wantName:  "noreply@example.com",
			wantEmail: "noreply@example.com",
		},
		{
			name:      "address in brackets without name",
			header:    "<alerts@example.com>",
			wantName:  "alerts@example.com",
			wantEmail: "alerts@example.com",
		},
		{
			name:      "not an address at all",
			header:    "Mailer Daemon",
			wantName:  "Mailer Daemon",
			wantEmail: "",
		},
		{
			name:      "empty header",
			header:    "",
			wantName:  "",
			wantEmail: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, email := ParseFrom(tt.header)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantEmail, email)
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "two tokens", in: "John Smith", want: "JS"},
		{name: "single token", in: "Marketing", want: "M"},
		{name: "three tokens uses first two", in: "Anna Maria Schmidt", want: "AM"},
		{name: "lowercase is uppercased", in: "jane doe", want: "JD"},
		{name: "unicode name", in: "Åsa Öberg", want: "ÅÖ"},
		{name: "empty name", in: "", want: ""},
		{name: "extra whitespace", in: "  John   Smith  ", want: "JS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}
