package domain

// Operator is the capability required by every mutating back-office
// operation. It is obtained by validating an admin session token; the zero
// value grants nothing.
type Operator struct {
	subject string
}

func NewOperator(subject string) Operator {
	return Operator{subject: subject}
}

func (o Operator) Subject() string {
	return o.subject
}

func (o Operator) Valid() bool {
	return o.subject != ""
}
