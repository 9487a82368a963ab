package models

// Coordinates is a lat/lng pair for a user's home city.
type Coordinates struct {
	Lat float64 `dynamodbav:"lat" json:"lat"`
	Lng float64 `dynamodbav:"lng" json:"lng"`
}

// Location describes where a user is based.
type Location struct {
	City        string      `dynamodbav:"city" json:"city"`
	Coordinates Coordinates `dynamodbav:"coordinates" json:"coordinates"`
}

// User is a registered participant. Matching only ever references users by
// id; the remaining attributes exist for the profile and discovery surfaces.
type User struct {
	UserID    string   `dynamodbav:"userId" json:"userId"`
	Name      string   `dynamodbav:"name" json:"name"`
	Email     string   `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Location  Location `dynamodbav:"location" json:"location"`
	Photo     string   `dynamodbav:"photo,omitempty" json:"photo,omitempty"` // S3 object key
	CreatedAt string   `dynamodbav:"createdAt" json:"createdAt"`
}

// UserWithActivity is a user plus their events and matches, returned by the
// profile read paths.
type UserWithActivity struct {
	User
	Events  []Event `json:"events"`
	Matches []Match `json:"matches"`
}

// UsersTable is the DynamoDB table name for users.
const UsersTable = "Users"

// UserNameIndex is the GSI used to look users up by name at login.
const UserNameIndex = "name-index"
