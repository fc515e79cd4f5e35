package log

// Common field names for structured logging
const (
	FieldComponent       = "component"
	FieldError           = "error"
	FieldOperation       = "operation"
	FieldJobID           = "job_id"
	FieldUserID          = "user_id"
	FieldAccountID       = "account_id"
	FieldBudgetID        = "budget_id"
	FieldTransactionID   = "transaction_id"
	FieldExternalID      = "external_id"
	FieldAmountCents     = "amount_cents"
	FieldPrimaryCategory = "primary_category"
	FieldPeriod          = "period"
	FieldUtilization     = "utilization"
	FieldBatchSize       = "batch_size"
	FieldSucceeded       = "succeeded"
	FieldFailed          = "failed"
	FieldDuration        = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentLedger     = "ledger"
	ComponentReconciler = "reconciler"
	ComponentBudget     = "budget"
	ComponentDashboard  = "dashboard"
	ComponentProvider   = "provider"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentCache      = "cache"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpList      = "list"
	OpSync      = "sync"
	OpReconcile = "reconcile"
	OpAlert     = "alert"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
