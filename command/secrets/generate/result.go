package generate

import (
	"fmt"
	"strings"

	"github.com/dogechain-lab/objectchain/command/helper"
)

type SecretsGenerateResult struct {
	ServiceType string `json:"service_type"`
	ServerURL   string `json:"server_url"`
	AccessToken string `json:"access_token"`
	NodeName    string `json:"node_name"`
	Namespace   string `json:"namespace"`
	Path        string `json:"path"`
}

func (r *SecretsGenerateResult) GetOutput() string {
	var buffer strings.Builder

	buffer.WriteString("\n[SECRETS GENERATE]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Service Type|%s", r.ServiceType),
		fmt.Sprintf("Server URL|%s", r.ServerURL),
		fmt.Sprintf("Access Token|%s", r.AccessToken),
		fmt.Sprintf("Node Name|%s", r.NodeName),
		fmt.Sprintf("Namespace|%s", r.Namespace),
		fmt.Sprintf("Path|%s", r.Path),
	}))

	return buffer.String()
}
