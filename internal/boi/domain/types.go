package domain

// Result is the normalized outcome every backend adapter returns.
// Message is empty on success.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK returns a successful result
func OK() Result {
	return Result{Success: true}
}

// Fail returns a failed result carrying msg
func Fail(msg string) Result {
	return Result{Success: false, Message: msg}
}

// EmployeeRecord is the SAP employee read model
type EmployeeRecord struct {
	IdNum        string `json:"idNum"`
	EmpNum       string `json:"empNum"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FirstNameEng string `json:"firstNameEng"`
	LastNameEng  string `json:"lastNameEng"`
	HireDate     string `json:"hireDate"`
	FireDate     string `json:"fireDate"`
	EmpType      string `json:"empType"`
	CardNum      string `json:"cardNum"`
	Image        string `json:"image"`
	UPN          string `json:"upn"`
	PhoneNumber  string `json:"phoneNumber"`
	Status       string `json:"status"`
	StatusDesc   string `json:"statusDesc"`
}

// PictureUpdateRequest is sent to the SAP picture service.
// Picture is base64 text.
type PictureUpdateRequest struct {
	IdNum   string `json:"idNum" validate:"required"`
	CardNum string `json:"cardNum"`
	Picture string `json:"picture" validate:"omitempty,base64"`
}

// SmsRequest is a direct SMS send
type SmsRequest struct {
	ToNumbers string `json:"toNumbers"`
	Message   string `json:"message"`
}

// SmsResult adds the raw service reply to the adapter result
type SmsResult struct {
	Result
	Reply string `json:"result"`
}

// HrRecord is the SRHR "Polimil" record. Image holds raw bytes and is
// encoded as base64 by encoding/json.
type HrRecord struct {
	CardId       string `json:"CardId"`
	EmployeeId   string `json:"EmployeeId"`
	EmployeeType string `json:"EmployeeType"`
	Factory      string `json:"Factory"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	Id           string `json:"Id"`
	Image        []byte `json:"Image"`
}

// CallbackData is the webhook body CCMS posts
type CallbackData struct {
	Id               int    `json:"Id"`
	Operation        int    `json:"Operation"`
	EntityTypeId     int    `json:"EntityTypeId"`
	EntityId         int    `json:"EntityId"`
	Issuer           string `json:"Issuer"`
	PreviousCardData string `json:"PreviousCardData"`
	CardData         string `json:"CardData"`
}

// CallbackResponse is always returned with HTTP 200
type CallbackResponse struct {
	IsValid  bool    `json:"IsValid"`
	Message  *string `json:"Message"`
	CardData *string `json:"CardData"`
}
