package jsonrpc

const (
	// DefaultJSONRPCBatchRequestLimit maximum length allowed for json_rpc batch requests
	DefaultJSONRPCBatchRequestLimit uint64 = 20
)

// DefaultNamespaces are served when the config names none
var DefaultNamespaces = []Namespace{NamespaceAuthority, NamespaceWeb3}
