package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Product management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Stock movements (receiving and adjustments)
	{Code: "movement:view", Name: "View Stock Movement"},
	{Code: "movement:create", Name: "Create Stock Movement"},
	{Code: "movement:update", Name: "Update Stock Movement"},
	{Code: "movement:delete", Name: "Delete Stock Movement"},
	// Point of sale
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:create", Name: "Create Sale"},
	// Cashier sessions
	{Code: "session:open", Name: "Open Cashier Session"},
	{Code: "session:close", Name: "Close Cashier Session"},
	{Code: "session:view", Name: "View Cashier Sessions"},
	// Shift management
	{Code: "shift:view", Name: "View Shift"},
	{Code: "shift:create", Name: "Create Shift"},
	{Code: "shift:update", Name: "Update Shift"},
	{Code: "shift:delete", Name: "Delete Shift"},
	// Reporting
	{Code: "report:view", Name: "View Reports"},
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// CashierPrivilegeCodes are the privileges granted to the CASHIER role.
var CashierPrivilegeCodes = []string{
	"product:view",
	"sale:view",
	"sale:create",
	"session:open",
	"session:close",
	"session:view",
	"shift:view",
}
