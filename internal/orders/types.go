package orders

// Order statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Index names on the orders table.
const (
	CustomerEmailIndex = "CustomerEmailIndex"
	StatusIndex        = "StatusIndex"
)

// Item is one line of an order.
type Item struct {
	ID          string  `json:"id" dynamodbav:"id" validate:"required"`
	Name        string  `json:"name" dynamodbav:"name" validate:"required"`
	Quantity    int     `json:"quantity" dynamodbav:"quantity" validate:"gt=0"`
	Price       float64 `json:"price" dynamodbav:"price" validate:"gte=0"`
	Description string  `json:"description" dynamodbav:"description"`
}

// Order is the public shape returned by the API.
type Order struct {
	ID                string  `json:"id" validate:"required"`
	CustomerName      string  `json:"customerName" validate:"required"`
	CustomerEmail     string  `json:"customerEmail" validate:"required,email"`
	Items             []Item  `json:"items" validate:"dive"`
	Total             float64 `json:"total" validate:"gte=0"`
	Status            string  `json:"status" validate:"oneof=pending processing shipped delivered cancelled"`
	CreatedAt         string  `json:"createdAt" validate:"required,rfc3339"`
	UpdatedAt         string  `json:"updatedAt" validate:"required,rfc3339"`
	EstimatedDelivery string  `json:"estimatedDelivery,omitempty" validate:"omitempty,rfc3339"`
	TrackingNumber    string  `json:"trackingNumber,omitempty"`
}

// Record is the item stored in the orders DynamoDB table.
type Record struct {
	PK                string  `dynamodbav:"PK" validate:"required"`
	SK                string  `dynamodbav:"SK" validate:"required"`
	GSI1PK            string  `dynamodbav:"GSI1PK,omitempty"` // customer email
	GSI1SK            string  `dynamodbav:"GSI1SK,omitempty"` // status#createdAt
	ID                string  `dynamodbav:"id" validate:"required"`
	CustomerName      string  `dynamodbav:"customerName" validate:"required"`
	CustomerEmail     string  `dynamodbav:"customerEmail" validate:"required"`
	Items             []Item  `dynamodbav:"items" validate:"dive"`
	Total             float64 `dynamodbav:"total"`
	Status            string  `dynamodbav:"status" validate:"oneof=pending processing shipped delivered cancelled"`
	CreatedAt         string  `dynamodbav:"createdAt" validate:"required,rfc3339"`
	UpdatedAt         string  `dynamodbav:"updatedAt" validate:"required,rfc3339"`
	EstimatedDelivery string  `dynamodbav:"estimatedDelivery,omitempty" validate:"omitempty,rfc3339"`
	TrackingNumber    string  `dynamodbav:"trackingNumber,omitempty"`
}

// Filter holds the optional GET /orders query parameters. At most one may be set.
type Filter struct {
	CustomerEmail string
	Status        string
}
