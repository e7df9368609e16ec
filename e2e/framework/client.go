package framework

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dogechain-lab/objectchain/types"
)

// RPCError is an error returned by the authority
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Client talks JSON-RPC to one authority over websocket. Calls are
// serialized on the connection.
type Client struct {
	lock   sync.Mutex
	conn   *websocket.Conn
	nextID uint64
}

// Dial connects to the /ws endpoint at addr
func Dial(addr string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	if err != nil {
		return nil, err
	}

	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Call invokes method and decodes the result into out
func (c *Client) Call(out interface{}, method string, params ...interface{}) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.nextID++

	if params == nil {
		params = []interface{}{}
	}

	if err := c.conn.WriteJSON(&request{
		JSONRPC: "2.0",
		ID:      c.nextID,
		Method:  method,
		Params:  params,
	}); err != nil {
		return err
	}

	var resp response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return err
	}

	if resp.Error != nil {
		return resp.Error
	}

	if resp.ID != c.nextID {
		return fmt.Errorf("response id %d, expected %d", resp.ID, c.nextID)
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(resp.Result, out)
}

func (c *Client) callRLP(method string, params ...interface{}) ([]byte, error) {
	var hex string

	if err := c.Call(&hex, method, params...); err != nil {
		return nil, err
	}

	return types.DecodeHex(hex)
}

// HandleOrder asks the authority to lock and sign an order
func (c *Client) HandleOrder(order *types.Order) (*types.OrderInfoResponse, error) {
	raw, err := c.callRLP("authority_handleOrder", types.EncodeToHex(order.MarshalRLP()))
	if err != nil {
		return nil, err
	}

	resp := &types.OrderInfoResponse{}

	return resp, resp.UnmarshalRLP(raw)
}

// HandleConfirmationOrder submits a certificate for execution
func (c *Client) HandleConfirmationOrder(cert *types.CertifiedOrder) (*types.OrderInfoResponse, error) {
	raw, err := c.callRLP("authority_handleConfirmationOrder", types.EncodeToHex(cert.MarshalRLP()))
	if err != nil {
		return nil, err
	}

	resp := &types.OrderInfoResponse{}

	return resp, resp.UnmarshalRLP(raw)
}

// GetObjectInfo returns the latest state of an object
func (c *Client) GetObjectInfo(id types.ObjectID) (*types.ObjectInfoResponse, error) {
	raw, err := c.callRLP("authority_getObjectInfo", id)
	if err != nil {
		return nil, err
	}

	resp := &types.ObjectInfoResponse{}

	return resp, resp.UnmarshalRLP(raw)
}

// GetObject returns the latest object, failing when it does not exist
func (c *Client) GetObject(id types.ObjectID) (*types.Object, error) {
	info, err := c.GetObjectInfo(id)
	if err != nil {
		return nil, err
	}

	if info.ObjectAndLock == nil || info.ObjectAndLock.Object == nil {
		return nil, errors.New("object not found")
	}

	return info.ObjectAndLock.Object, nil
}
