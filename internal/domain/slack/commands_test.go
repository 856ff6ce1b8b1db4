package slack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     CommandType
		wantArgs []string
		wantErr  bool
	}{
		{name: "Should default to help on empty text", text: "   ", want: CmdHelp},
		{name: "Should parse ping", text: "ping", want: CmdPing},
		{name: "Should parse last ignoring case", text: "LAST", want: CmdLast},
		{name: "Should accept status as an alias of last", text: "status", want: CmdLast},
		{name: "Should parse next with args", text: "next please", want: CmdNext, wantArgs: []string{"please"}},
		{name: "Should parse help", text: "help", want: CmdHelp},
		{name: "Should reject unknown commands", text: "add @ada", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cmd)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Type)
			assert.Equal(t, tt.wantArgs, cmd.Args)
		})
	}
}

func TestGetHelpText(t *testing.T) {
	help := GetHelpText()
	for _, cmd := range []CommandType{CmdPing, CmdLast, CmdNext, CmdHelp} {
		assert.Contains(t, help, "/statusbot "+string(cmd))
	}
}
