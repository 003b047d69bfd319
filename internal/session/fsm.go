package session

// State identifies which step of a multi-message flow a user is in. The zero
// value means no flow is active.
type State string

const (
	StateIdle State = ""

	// Custom account purchase flow.
	StateCustomEmail    State = "custom_email"
	StateCustomPassword State = "custom_password"

	// Support flow.
	StateSupportMessage State = "support_message"

	// Wallet deposit flows.
	StateZibalAmount  State = "zibal_amount"
	StateCryptoAmount State = "crypto_amount"

	// Admin: product creation.
	StateAdminProductName  State = "admin_product_name"
	StateAdminProductDesc  State = "admin_product_desc"
	StateAdminProductPrice State = "admin_product_price"

	// Admin: inventory loading.
	StateAdminAccountProduct State = "admin_account_product"
	StateAdminAccountLogin   State = "admin_account_login"
	StateAdminAccountPass    State = "admin_account_pass"
	StateAdminAccountExtra   State = "admin_account_extra"

	// Admin: custom account type creation.
	StateAdminTypeName  State = "admin_type_name"
	StateAdminTypeDesc  State = "admin_type_desc"
	StateAdminTypeRules State = "admin_type_rules"
	StateAdminTypePrice State = "admin_type_price"
	StateAdminTypeHours State = "admin_type_hours"

	// Admin: product price edit.
	StateAdminEditPrice State = "admin_edit_price"

	// Admin: balance adjustment.
	StateAdminBalanceUser   State = "admin_balance_user"
	StateAdminBalanceAmount State = "admin_balance_amount"

	// Admin: manual delivery / rejection of a custom order.
	StateAdminDeliver State = "admin_deliver"
	StateAdminReject  State = "admin_reject"
)

// transitions is the table of states whose next text input moves the flow to
// another prompt. Terminal steps (the ones that complete an operation and
// clear the session) are absent on purpose.
var transitions = map[State]State{
	StateCustomEmail: StateCustomPassword,

	StateAdminProductName: StateAdminProductDesc,
	StateAdminProductDesc: StateAdminProductPrice,

	StateAdminAccountProduct: StateAdminAccountLogin,
	StateAdminAccountLogin:   StateAdminAccountPass,
	StateAdminAccountPass:    StateAdminAccountExtra,

	StateAdminTypeName:  StateAdminTypeDesc,
	StateAdminTypeDesc:  StateAdminTypeRules,
	StateAdminTypeRules: StateAdminTypePrice,
	StateAdminTypePrice: StateAdminTypeHours,

	StateAdminBalanceUser: StateAdminBalanceAmount,
}

// Next returns the state a text input advances the flow to, and whether the
// current state has a follow-up prompt at all.
func Next(s State) (State, bool) {
	next, ok := transitions[s]
	return next, ok
}
