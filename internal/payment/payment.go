package payment

import "strings"

const CashOnDelivery = "cod"

type Method struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// Registry 可用的付款方式，目前只有貨到付款
type Registry struct {
	methods map[string]Method
	order   []string
}

func NewRegistry(methods ...Method) *Registry {
	r := &Registry{methods: make(map[string]Method, len(methods))}
	for _, m := range methods {
		r.Register(m)
	}
	return r
}

func DefaultRegistry() *Registry {
	return NewRegistry(Method{Code: CashOnDelivery, DisplayName: "Cash On Delivery"})
}

func (r *Registry) Register(m Method) {
	code := normalize(m.Code)
	if _, ok := r.methods[code]; !ok {
		r.order = append(r.order, code)
	}
	m.Code = code
	r.methods[code] = m
}

func (r *Registry) Resolve(code string) (Method, bool) {
	m, ok := r.methods[normalize(code)]
	return m, ok
}

func (r *Registry) Methods() []Method {
	res := make([]Method, 0, len(r.order))
	for _, code := range r.order {
		res = append(res, r.methods[code])
	}
	return res
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
