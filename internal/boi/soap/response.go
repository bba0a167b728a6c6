package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/comda/boi-proxy/internal/boi/domain"
)

// Element is a parsed XML element keyed by local name only. Namespace
// prefixes differ between SAP systems, so lookups ignore them.
type Element struct {
	Name     string
	Children []*Element
	text     strings.Builder
}

// Text returns the character data of the element and all its descendants
func (e *Element) Text() string {
	return e.text.String()
}

// Child returns the first direct child with the given local name
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the named child and whether it exists
func (e *Element) ChildText(name string) (string, bool) {
	c := e.Child(name)
	if c == nil {
		return "", false
	}
	return c.Text(), true
}

// Find returns the first element in document order, e included, with the given local name
func (e *Element) Find(name string) *Element {
	if e.Name == name {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element, e included, with the given local name
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	if e.Name == name {
		out = append(out, e)
	}
	for _, c := range e.Children {
		out = append(out, c.FindAll(name)...)
	}
	return out
}

var errNoRoot = errors.New("xml document has no root element")

// Parse reads body into an element tree and returns the root
func Parse(body []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	// SAP and IIS hosts may answer in windows-1255 or ISO-8859-1
	dec.CharsetReader = charset.NewReaderLabel

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("xml document has more than one root element")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			for _, el := range stack {
				el.text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errNoRoot
	}
	if len(stack) != 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// ReturnMessages classifies the ReturnMessage elements of a response.
// Type E or Error is a business error; other types are ignored.
func ReturnMessages(root *Element) domain.Result {
	var errs []string
	for _, msg := range root.FindAll("ReturnMessage") {
		typ, _ := msg.ChildText("Type")
		if typ != "E" && typ != "Error" {
			continue
		}
		text, ok := msg.ChildText("Message")
		if !ok {
			text = "Unknown error"
		}
		errs = append(errs, text)
	}

	if len(errs) > 0 {
		return domain.Fail(strings.Join(errs, "; "))
	}
	return domain.OK()
}

// ParseReturnMessages parses body and classifies its ReturnMessage elements
func ParseReturnMessages(body []byte) (domain.Result, error) {
	root, err := Parse(body)
	if err != nil {
		return domain.Result{}, err
	}
	return ReturnMessages(root), nil
}

// Employee reads the comda_res_dtEmpData element, or returns nil when absent
func Employee(root *Element) *domain.EmployeeRecord {
	data := root.Find("comda_res_dtEmpData")
	if data == nil {
		return nil
	}

	get := func(name string) string {
		v, _ := data.ChildText(name)
		return v
	}

	return &domain.EmployeeRecord{
		IdNum:        get("IdNum"),
		EmpNum:       get("EmpNum"),
		FirstName:    get("FirstName"),
		LastName:     get("LastName"),
		FirstNameEng: get("FIRST_NAME_ENG"),
		LastNameEng:  get("LAST_NAME_ENG"),
		HireDate:     get("HierDate"),
		FireDate:     get("FireDate"),
		EmpType:      get("EmpType"),
		CardNum:      get("CardNum"),
		Image:        get("IMAGE"),
		UPN:          get("UPN"),
		PhoneNumber:  get("PHONE_NUMBER"),
		Status:       get("Status"),
		StatusDesc:   get("StatusDesc"),
	}
}

// SendSMSReply classifies the SendSMSResult text. The service reports
// failures as free text, so any mention of error or fail is a failure.
func SendSMSReply(root *Element) (domain.Result, string) {
	var reply string
	if el := root.Find("SendSMSResult"); el != nil {
		reply = el.Text()
	}

	lower := strings.ToLower(reply)
	if strings.Contains(lower, "error") || strings.Contains(lower, "fail") {
		return domain.Fail(reply), reply
	}
	return domain.OK(), reply
}
