package testutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/comda/boi-proxy/internal/boi/domain"
)

// ReturnMessage is one SAP ReturnMessage element
type ReturnMessage struct {
	Type    string
	Message string
}

// PictureResponse renders a comda_pic_res_mt reply with the given return messages
func PictureResponse(msgs ...ReturnMessage) string {
	var inner strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&inner, "<ReturnMessage><Type>%s</Type><Message>%s</Message></ReturnMessage>", m.Type, m.Message)
	}
	return `<SOAP:Envelope xmlns:SOAP="http://schemas.xmlsoap.org/soap/envelope/"><SOAP:Body>` +
		`<ns0:comda_pic_res_mt xmlns:ns0="http://boi.org.il/HR_Polimil_Pic">` + inner.String() +
		`</ns0:comda_pic_res_mt></SOAP:Body></SOAP:Envelope>`
}

// EmployeeResponse renders a comda_mi reply carrying emp
func EmployeeResponse(emp domain.EmployeeRecord) string {
	fields := []struct{ name, value string }{
		{"IdNum", emp.IdNum},
		{"EmpNum", emp.EmpNum},
		{"FirstName", emp.FirstName},
		{"LastName", emp.LastName},
		{"FIRST_NAME_ENG", emp.FirstNameEng},
		{"LAST_NAME_ENG", emp.LastNameEng},
		{"HierDate", emp.HireDate},
		{"FireDate", emp.FireDate},
		{"EmpType", emp.EmpType},
		{"CardNum", emp.CardNum},
		{"IMAGE", emp.Image},
		{"UPN", emp.UPN},
		{"PHONE_NUMBER", emp.PhoneNumber},
		{"Status", emp.Status},
		{"StatusDesc", emp.StatusDesc},
	}

	var inner strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&inner, "<%s>%s</%s>", f.name, f.value, f.name)
	}
	return `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
		`<comda_miResponse xmlns="http://boi.sap.in/"><comda_res_dtEmpData>` + inner.String() +
		`</comda_res_dtEmpData></comda_miResponse></soap:Body></soap:Envelope>`
}

// SMSResponse renders a SendSMS reply
func SMSResponse(reply string) string {
	return `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
		`<SendSMSResponse xmlns="http://tempuri.org/"><SendSMSResult>` + reply +
		`</SendSMSResult></SendSMSResponse></soap:Body></soap:Envelope>`
}

// CardFactory builds CCMS CardData maps using the default field names
type CardFactory struct {
	sequence int
}

// NewCardFactory creates a new card fixture factory
func NewCardFactory() *CardFactory {
	return &CardFactory{}
}

// Card returns a populated card; each call gets unique identifiers.
// The default photo "/9j/" decodes to the JPEG marker ff d8 ff.
func (f *CardFactory) Card(opts ...func(domain.AttributeMap)) domain.AttributeMap {
	f.sequence++
	card := domain.AttributeMap{
		"ID_Number":       domain.StringValue(fmt.Sprintf("%09d", 100000000+f.sequence)),
		"Employee_Number": domain.NumberValue(json.Number(strconv.Itoa(5000 + f.sequence))),
		"CardNo":          domain.StringValue(fmt.Sprintf("%d", 700+f.sequence)),
		"FirstName_Hb":    domain.StringValue("דנה"),
		"LastName_Hb":     domain.StringValue("לוי"),
		"EmployeeType":    domain.StringValue("1"),
		"Phone":           domain.StringValue("0501234567"),
		"PhotoBase64":     domain.StringValue("/9j/"),
	}

	for _, opt := range opts {
		opt(card)
	}
	return card
}

// With sets a field
func With(key string, v domain.Value) func(domain.AttributeMap) {
	return func(m domain.AttributeMap) {
		m[key] = v
	}
}

// Without removes a field
func Without(key string) func(domain.AttributeMap) {
	return func(m domain.AttributeMap) {
		delete(m, key)
	}
}
