package jsonrpc

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/hashicorp/go-hclog"
)

type serviceData struct {
	sv      reflect.Value
	funcMap map[string]*funcData
}

type funcData struct {
	inNum int
	reqt  []reflect.Type
	fv    reflect.Value
}

func (f *funcData) numParams() int {
	return f.inNum - 1
}

// Namespace is the first part of a method name, the endpoint serving it
type Namespace string

const (
	NamespaceAuthority Namespace = "authority"
	NamespaceWeb3      Namespace = "web3"
)

// dispatcher routes requests to the exported methods of the registered
// endpoints: authority_getOrderInfo calls Authority.GetOrderInfo
type dispatcher struct {
	logger           hclog.Logger
	metrics          *Metrics
	serviceMap       map[string]*serviceData
	batchLengthLimit uint64
}

func newDispatcher(
	logger hclog.Logger,
	metrics *Metrics,
	store AuthorityStore,
	batchLengthLimit uint64,
	namespaces []Namespace,
) *dispatcher {
	d := &dispatcher{
		logger:           logger.Named("dispatcher"),
		metrics:          NewDummyMetrics(metrics),
		batchLengthLimit: batchLengthLimit,
	}

	d.registerEndpoints(store, namespaces)

	return d
}

func (d *dispatcher) registerEndpoints(store AuthorityStore, namespaces []Namespace) {
	for _, namespace := range namespaces {
		switch namespace {
		case NamespaceAuthority:
			d.registerService(string(namespace), &Authority{store: store, metrics: d.metrics})
		case NamespaceWeb3:
			d.registerService(string(namespace), &Web3{metrics: d.metrics})
		default:
			d.logger.Warn("unknown namespace", "namespace", namespace)
		}
	}
}

func (d *dispatcher) getFnHandler(req Request) (*serviceData, *funcData, Error) {
	callName := strings.SplitN(req.Method, "_", 2)
	if len(callName) != 2 {
		return nil, nil, NewMethodNotFoundError(req.Method)
	}

	serviceName, funcName := callName[0], callName[1]

	service, ok := d.serviceMap[serviceName]
	if !ok {
		return nil, nil, NewMethodNotFoundError(req.Method)
	}

	fd, ok := service.funcMap[funcName]
	if !ok {
		return nil, nil, NewMethodNotFoundError(req.Method)
	}

	return service, fd, nil
}

func (d *dispatcher) handleReq(req Request) ([]byte, Error) {
	d.logger.Debug("request", "method", req.Method, "id", req.ID)

	service, fd, ferr := d.getFnHandler(req)
	if ferr != nil {
		return nil, ferr
	}

	inArgs := make([]reflect.Value, fd.inNum)
	inArgs[0] = service.sv

	inputs := make([]interface{}, fd.numParams())

	for i := 0; i < fd.inNum-1; i++ {
		val := reflect.New(fd.reqt[i+1])
		inputs[i] = val.Interface()
		inArgs[i+1] = val.Elem()
	}

	if fd.numParams() > 0 {
		if err := json.Unmarshal(req.Params, &inputs); err != nil {
			return nil, NewInvalidParamsError("Invalid Params")
		}
	}

	output := fd.fv.Call(inArgs)
	if err := getError(output[1]); err != nil {
		d.logger.Debug("failed to dispatch", "method", req.Method, "err", err)

		return nil, toRPCError(err)
	}

	var (
		data []byte
		err  error
	)

	if res := output[0].Interface(); res != nil {
		data, err = json.Marshal(res)
		if err != nil {
			return nil, NewInternalError("Internal error")
		}
	}

	return data, nil
}

func toRPCError(err error) Error {
	if rpcErr, ok := err.(Error); ok { //nolint:errorlint
		return rpcErr
	}

	return NewAuthorityError(err)
}

// Handle serves a single request or a batch of them
func (d *dispatcher) Handle(reqBody []byte) ([]byte, error) {
	x := json.NewDecoder(strings.NewReader(string(reqBody)))

	t, err := x.Token()
	if err != nil {
		return NewRPCResponse(nil, "2.0", nil, NewInvalidRequestError("Invalid json request")).Bytes()
	}

	if t != json.Delim('[') {
		var req Request
		if err := json.Unmarshal(reqBody, &req); err != nil {
			return NewRPCResponse(nil, "2.0", nil, NewInvalidRequestError("Invalid json request")).Bytes()
		}

		resp, err := d.handleReq(req)

		return NewRPCResponse(req.ID, "2.0", resp, err).Bytes()
	}

	var requests []Request
	if err := json.Unmarshal(reqBody, &requests); err != nil {
		return NewRPCResponse(nil, "2.0", nil, NewInvalidRequestError("Invalid json request")).Bytes()
	}

	if len(requests) == 0 {
		return NewRPCResponse(nil, "2.0", nil, NewInvalidRequestError("Empty batch")).Bytes()
	}

	if d.batchLengthLimit != 0 && uint64(len(requests)) > d.batchLengthLimit {
		return NewRPCResponse(nil, "2.0", nil, NewInvalidRequestError(
			fmt.Sprintf("Batch request length too long, limit %d", d.batchLengthLimit))).Bytes()
	}

	responses := make([]Response, 0, len(requests))

	for _, req := range requests {
		resp, err := d.handleReq(req)
		responses = append(responses, NewRPCResponse(req.ID, "2.0", resp, err))
	}

	return json.Marshal(responses)
}

// HandleWs serves a request read from a websocket connection
func (d *dispatcher) HandleWs(reqBody []byte, conn wsConn) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(reqBody, &req); err != nil {
		return NewRPCResponse(nil, "2.0", nil, NewInvalidRequestError("Invalid json request")).Bytes()
	}

	d.logger.Debug("ws request", "conn", conn.ID(), "method", req.Method)

	resp, err := d.handleReq(req)

	return NewRPCResponse(req.ID, "2.0", resp, err).Bytes()
}

func (d *dispatcher) registerService(serviceName string, service interface{}) {
	if d.serviceMap == nil {
		d.serviceMap = map[string]*serviceData{}
	}

	if serviceName == "" {
		panic("jsonrpc: serviceName cannot be empty")
	}

	st := reflect.TypeOf(service)
	if st.Kind() == reflect.Struct {
		panic(fmt.Sprintf("jsonrpc: service '%s' must be a pointer to struct", serviceName))
	}

	funcMap := make(map[string]*funcData)

	for i := 0; i < st.NumMethod(); i++ {
		mv := st.Method(i)
		if mv.PkgPath != "" {
			// skip unexported methods
			continue
		}

		name := lowerCaseFirst(mv.Name)
		funcName := serviceName + "_" + name
		fd := &funcData{
			fv: mv.Func,
		}

		var err error

		if fd.inNum, fd.reqt, err = validateFunc(funcName, fd.fv); err != nil {
			panic(fmt.Sprintf("jsonrpc: %s", err))
		}

		funcMap[name] = fd
	}

	d.serviceMap[serviceName] = &serviceData{
		sv:      reflect.ValueOf(service),
		funcMap: funcMap,
	}
}

func validateFunc(funcName string, fv reflect.Value) (inNum int, reqt []reflect.Type, err error) {
	if funcName == "" {
		err = fmt.Errorf("getFunc: funcName cannot be empty")

		return
	}

	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		err = fmt.Errorf("function '%s' must be a function instead of %s", funcName, ft)

		return
	}

	inNum = ft.NumIn()

	if outNum := ft.NumOut(); outNum != 2 {
		err = fmt.Errorf("unexpected number of output arguments in the function '%s': %d. Expected 2", funcName, outNum)

		return
	}

	if !isErrorType(ft.Out(1)) {
		err = fmt.Errorf(
			"unexpected type for the second return value of the function '%s': '%s'. Expected '%s'",
			funcName,
			ft.Out(1),
			errt,
		)

		return
	}

	reqt = make([]reflect.Type, inNum)
	for i := 0; i < inNum; i++ {
		reqt[i] = ft.In(i)
	}

	return
}

var errt = reflect.TypeOf((*error)(nil)).Elem()

func isErrorType(t reflect.Type) bool {
	return t.Implements(errt)
}

func getError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}

	//nolint:forcetypeassert
	return v.Interface().(error)
}

func lowerCaseFirst(str string) string {
	for i, v := range str {
		return string(unicode.ToLower(v)) + str[i+1:]
	}

	return ""
}
