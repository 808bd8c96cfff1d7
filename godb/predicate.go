package godb

// Predicate tests one field of a tuple against a constant, for use by Filter
// (spec §4.6).
type Predicate struct {
	FieldIndex int
	Op         BoolOp
	Constant   Field
}

// NewPredicate resolves fieldName against desc and builds a Predicate
// comparing that field against constant.
func NewPredicate(desc *TupleDesc, fieldName string, op BoolOp, constant Field) (*Predicate, error) {
	idx, err := desc.FindField(fieldName)
	if err != nil {
		return nil, err
	}
	if desc.Fields[idx].Ftype != constant.Type() {
		return nil, newErr(TypeMismatchError, "predicate field %q is %s, constant is %s", fieldName, desc.Fields[idx].Ftype, constant.Type())
	}
	return &Predicate{FieldIndex: idx, Op: op, Constant: constant}, nil
}

// Eval reports whether t's predicate field satisfies the predicate.
func (p *Predicate) Eval(t *Tuple) bool {
	return t.Fields[p.FieldIndex].EvalPred(p.Constant, p.Op)
}

// JoinPredicate tests one field of a left tuple against one field of a right
// tuple, for use by Join (spec §4.6).
type JoinPredicate struct {
	LeftIndex  int
	Op         BoolOp
	RightIndex int
}

// NewJoinPredicate resolves leftField against leftDesc and rightField
// against rightDesc.
func NewJoinPredicate(leftDesc *TupleDesc, leftField string, op BoolOp, rightDesc *TupleDesc, rightField string) (*JoinPredicate, error) {
	li, err := leftDesc.FindField(leftField)
	if err != nil {
		return nil, err
	}
	ri, err := rightDesc.FindField(rightField)
	if err != nil {
		return nil, err
	}
	if leftDesc.Fields[li].Ftype != rightDesc.Fields[ri].Ftype {
		return nil, newErr(TypeMismatchError, "join fields %q and %q have different types", leftField, rightField)
	}
	return &JoinPredicate{LeftIndex: li, Op: op, RightIndex: ri}, nil
}

// Eval reports whether left's join field and right's join field satisfy the
// predicate.
func (p *JoinPredicate) Eval(left, right *Tuple) bool {
	return left.Fields[p.LeftIndex].EvalPred(right.Fields[p.RightIndex], p.Op)
}
