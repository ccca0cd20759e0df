// Package dto resolves HTTP requests into validated domain objects.
//
// An intermediate input type collects the raw request: its body is decoded by
// a codec and its header, path and query fields are filled by a binder.Table.
// A Builder turns the intermediate object into the DTO and an optional
// Validator checks the result. Everything is registered under stable
// identifiers:
//
//	reg := dto.NewRegistry()
//	_ = dto.RegisterInput(reg, "order.input", orderTable)
//	_ = dto.RegisterType[Order](reg, "order")
//	_ = reg.RegisterBuilder("order.builder", dto.NewBuilder("order.input", "order", buildOrder))
//	_ = reg.RegisterValidator("order.validator", dto.NewValidator("order", validateOrder))
//
//	decl := &dto.Declaration{Input: "order.input", Builder: "order.builder", Validator: "order.validator"}
//	res := dto.NewResolver(reg, dto.WithLogger(log))
//	if err := res.Check(*decl); err != nil {
//		return err
//	}
//	order, err := dto.ResolveAs[Order](ctx, res, dto.Param{Name: "order", DTO: decl}, req)
//
// Resolution runs in a fixed order and stops at the first fatal failure:
// builder lookup and input type check, body decoding, header, path and query
// extraction, constraint validation of the intermediate object, building,
// output type check, and DTO validation. KindOf classifies the returned error.
package dto
