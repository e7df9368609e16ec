package init

import (
	"fmt"
	"strings"

	"github.com/dogechain-lab/objectchain/command/helper"
	"github.com/dogechain-lab/objectchain/types"
)

type SecretsInitResult struct {
	Authority types.AuthorityName `json:"authority"`
}

func (r *SecretsInitResult) GetOutput() string {
	var buffer strings.Builder

	buffer.WriteString("\n[SECRETS INIT]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Authority Name|%s", r.Authority),
	}))

	return buffer.String()
}
