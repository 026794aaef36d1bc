package microsoft

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

const (
	// ServiceNamespace is the datacontract namespace of the V2 translator service.
	ServiceNamespace = "http://schemas.datacontract.org/2004/07/Microsoft.MT.Web.Service.V2"
	// ArraysNamespace qualifies the <string> elements inside <Texts>.
	ArraysNamespace = "http://schemas.microsoft.com/2003/10/Serialization/Arrays"

	contentTypePlain = "text/plain"
)

// translateArrayRequest is the TranslateArray request envelope. Text content
// goes through encoding/xml, so '<', '&' and quotes are escaped.
type translateArrayRequest struct {
	XMLName xml.Name       `xml:"TranslateArrayRequest"`
	AppID   string         `xml:"AppId"`
	From    string         `xml:"From"`
	Options requestOptions `xml:"Options"`
	Texts   requestTexts   `xml:"Texts"`
	To      string         `xml:"To"`
}

type requestOptions struct {
	Category      string `xml:"http://schemas.datacontract.org/2004/07/Microsoft.MT.Web.Service.V2 Category"`
	ContentType   string `xml:"http://schemas.datacontract.org/2004/07/Microsoft.MT.Web.Service.V2 ContentType"`
	ReservedFlags string `xml:"http://schemas.datacontract.org/2004/07/Microsoft.MT.Web.Service.V2 ReservedFlags"`
	State         string `xml:"http://schemas.datacontract.org/2004/07/Microsoft.MT.Web.Service.V2 State"`
	URI           string `xml:"http://schemas.datacontract.org/2004/07/Microsoft.MT.Web.Service.V2 Uri"`
	User          string `xml:"http://schemas.datacontract.org/2004/07/Microsoft.MT.Web.Service.V2 User"`
}

type requestTexts struct {
	Strings []string `xml:"http://schemas.microsoft.com/2003/10/Serialization/Arrays string"`
}

// translateArrayResponse is one <TranslateArrayResponse> entry of the reply.
type translateArrayResponse struct {
	TranslatedText []string `xml:"TranslatedText"`
}

// encodeRequest renders the request body for texts.
func encodeRequest(from, to string, texts []string) ([]byte, error) {
	req := translateArrayRequest{
		From:    from,
		Options: requestOptions{ContentType: contentTypePlain},
		Texts:   requestTexts{Strings: texts},
		To:      to,
	}

	body, err := xml.Marshal(req)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// decodeResponse walks the response and returns, for every
// TranslateArrayResponse element found at any depth, its last TranslatedText
// value, in document order.
func decodeResponse(body []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	var translations []string

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || !isResponseElement(start.Name) {
			continue
		}

		var entry translateArrayResponse
		if err := decoder.DecodeElement(&entry, &start); err != nil {
			return nil, err
		}

		value := ""
		if n := len(entry.TranslatedText); n > 0 {
			value = entry.TranslatedText[n-1]
		}
		translations = append(translations, value)
	}

	return translations, nil
}

func isResponseElement(name xml.Name) bool {
	return name.Local == "TranslateArrayResponse" && (name.Space == ServiceNamespace || name.Space == "")
}
