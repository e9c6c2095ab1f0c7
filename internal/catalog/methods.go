package catalog

// MethodInfo is the display metadata for one method tag, derived once here
// instead of being copy-pasted per consumer.
type MethodInfo struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var methodInfos = map[string]MethodInfo{
	MethodCreditCard:    {Tag: MethodCreditCard, Name: "Credit Card", Description: "Visa, Mastercard and Amex", Icon: "credit-card"},
	MethodDebitCard:     {Tag: MethodDebitCard, Name: "Debit Card", Description: "Pay with your debit card", Icon: "credit-card"},
	MethodMada:          {Tag: MethodMada, Name: "mada", Description: "Saudi local debit network", Icon: "mada"},
	MethodApplePay:      {Tag: MethodApplePay, Name: "Apple Pay", Description: "Pay with Apple Pay", Icon: "apple"},
	MethodGooglePay:     {Tag: MethodGooglePay, Name: "Google Pay", Description: "Pay with Google Pay", Icon: "google"},
	MethodSTCPay:        {Tag: MethodSTCPay, Name: "STC Pay", Description: "Pay with your STC Pay wallet", Icon: "wallet"},
	MethodInstallments:  {Tag: MethodInstallments, Name: "Installments", Description: "Split your payment into installments", Icon: "calendar"},
	MethodPayLater:      {Tag: MethodPayLater, Name: "Pay Later", Description: "Buy now, pay later", Icon: "clock"},
	MethodCashOnDeliver: {Tag: MethodCashOnDeliver, Name: "Cash on Delivery", Description: "Pay in cash when your order arrives", Icon: "banknote"},
	MethodBankTransfer:  {Tag: MethodBankTransfer, Name: "Bank Transfer", Description: "Manual bank transfer", Icon: "bank"},
}

// InfoFor returns display metadata for a method tag, falling back to a bare
// record so unknown tags still render.
func InfoFor(tag string) MethodInfo {
	if info, ok := methodInfos[tag]; ok {
		return info
	}
	return MethodInfo{Tag: tag, Name: tag}
}

// FieldSpec describes one customer field a method requires at checkout.
type FieldSpec struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Kind     string `json:"kind"` // text, email, phone
	Required bool   `json:"required"`
}

var (
	fieldName  = FieldSpec{Name: "name", Label: "Full name", Kind: "text", Required: true}
	fieldEmail = FieldSpec{Name: "email", Label: "Email", Kind: "email", Required: true}
	fieldPhone = FieldSpec{Name: "phone", Label: "Phone number", Kind: "phone", Required: true}
)

// requiredCustomerFields is the single declarative table replacing per-branch
// form logic: method tag → the fields checkout must collect and validate.
var requiredCustomerFields = map[string][]FieldSpec{
	MethodCreditCard:    {fieldName, fieldEmail},
	MethodDebitCard:     {fieldName, fieldEmail},
	MethodMada:          {fieldName, fieldEmail},
	MethodApplePay:      {fieldEmail},
	MethodGooglePay:     {fieldEmail},
	MethodSTCPay:        {fieldName, fieldPhone},
	MethodInstallments:  {fieldName, fieldEmail, fieldPhone},
	MethodPayLater:      {fieldName, fieldEmail, fieldPhone},
	MethodCashOnDeliver: {fieldName, fieldPhone},
	MethodBankTransfer:  {fieldName, fieldEmail},
}

// CustomerFieldsFor returns the field specs a method requires. Unknown tags
// get the conservative default of name plus email.
func CustomerFieldsFor(tag string) []FieldSpec {
	if specs, ok := requiredCustomerFields[tag]; ok {
		return specs
	}
	return []FieldSpec{fieldName, fieldEmail}
}
