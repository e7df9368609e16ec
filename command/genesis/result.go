package genesis

import (
	"fmt"
	"strings"

	"github.com/dogechain-lab/objectchain/command/helper"
)

type GenesisResult struct {
	Message     string `json:"message"`
	Authorities int    `json:"authorities"`
	Objects     int    `json:"objects"`
}

func (r *GenesisResult) GetOutput() string {
	var buffer strings.Builder

	buffer.WriteString("\n[GENESIS SUCCESS]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Message|%s", r.Message),
		fmt.Sprintf("Authorities|%d", r.Authorities),
		fmt.Sprintf("Objects|%d", r.Objects),
	}))

	return buffer.String()
}
