package directory

// Store is a fulfillment location.
type Store struct {
	ID           int64  `json:"store_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}

// Employee is a staff member attached to a store.
type Employee struct {
	ID           int64  `json:"employee_id"`
	StoreID      int64  `json:"store_id"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// CreateStoreRequest holds data for creating a store.
type CreateStoreRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}

// CreateEmployeeRequest holds data for hiring an employee into a store.
type CreateEmployeeRequest struct {
	StoreID  int64  `json:"store_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
