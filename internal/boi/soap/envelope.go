// Package soap builds the BOI SOAP request envelopes and reads their responses.
package soap

import (
	"bytes"
	"encoding/xml"
	"strings"
	"text/template"

	"github.com/comda/boi-proxy/internal/boi/domain"
)

// SOAPAction header values
const (
	ActionGetEmployee   = "http://boi.sap.in/comda_mi"
	ActionUpdatePicture = "http://sap.com/xi/WebService/soap1.1"
	ActionSendSMS       = "http://tempuri.org/SendSMS"
)

// ContentType is the request content type for SOAP 1.1
const ContentType = "text/xml; charset=utf-8"

var funcs = template.FuncMap{"xml": escape}

var getEmployeeTmpl = template.Must(template.New("comda_mi").Funcs(funcs).Parse(
	`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:tns="http://boi.sap.in/" xmlns:s1="http://boi.org.il/HR_Comda">
    <soap:Body>
        <tns:comda_mi>
            <tns:dt>
                <IDNum>{{xml .}}</IDNum>
            </tns:dt>
        </tns:comda_mi>
    </soap:Body>
</soap:Envelope>`))

// The picture is base64 and embedded as is.
var updatePictureTmpl = template.Must(template.New("comda_pic_req_mt").Funcs(funcs).Parse(
	`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:p2="http://boi.org.il/HR_Polimil_Pic">
    <soap:Body>
        <p2:comda_pic_req_mt>
            <p2:IDNum>{{xml .IdNum}}</p2:IDNum>
            <p2:CardNum>{{xml .CardNum}}</p2:CardNum>
            <p2:Picture>{{.Picture}}</p2:Picture>
        </p2:comda_pic_req_mt>
    </soap:Body>
</soap:Envelope>`))

var sendSMSTmpl = template.Must(template.New("SendSMS").Funcs(funcs).Parse(
	`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:tns="http://tempuri.org/">
    <soap:Body>
        <tns:SendSMS>
            <tns:toNumbers>{{xml .ToNumbers}}</tns:toNumbers>
            <tns:message>{{xml .Message}}</tns:message>
        </tns:SendSMS>
    </soap:Body>
</soap:Envelope>`))

// GetEmployeeEnvelope builds the comda_mi lookup request
func GetEmployeeEnvelope(idNumber string) ([]byte, error) {
	return render(getEmployeeTmpl, idNumber)
}

// UpdatePictureEnvelope builds the comda_pic_req_mt request
func UpdatePictureEnvelope(req domain.PictureUpdateRequest) ([]byte, error) {
	return render(updatePictureTmpl, req)
}

// SendSMSEnvelope builds the SendSMS request
func SendSMSEnvelope(req domain.SmsRequest) ([]byte, error) {
	return render(sendSMSTmpl, req)
}

func render(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escape(s string) string {
	var b strings.Builder
	// strings.Builder never fails a write
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
