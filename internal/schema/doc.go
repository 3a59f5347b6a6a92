// Package schema holds the request and response shapes of the books API and
// the rules that validate them.
//
// Validation always happens before the store is touched. Every failure is
// reported as a *ValidationError carrying one FieldError per offending field:
//
//	v := schema.NewValidator(time.Now)
//	var req schema.BookCreate
//	if err := json.Unmarshal(body, &req); err != nil {
//		return schema.FromDecodeError(err)
//	}
//	if err := v.ValidateCreate(req); err != nil {
//		return err // *ValidationError
//	}
//
// Partial updates use Optional so that an omitted field, an explicit null and
// a concrete value stay distinguishable after decoding.
package schema
