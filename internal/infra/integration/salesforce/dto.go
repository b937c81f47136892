package salesforce

import "encoding/xml"

const (
	soapNS    = "http://schemas.xmlsoap.org/soap/envelope/"
	partnerNS = "urn:partner.soap.sforce.com"
)

// ---------- Requests (Partner SOAP API) ----------

type loginEnvelope struct {
	XMLName   xml.Name  `xml:"soapenv:Envelope"`
	SoapNS    string    `xml:"xmlns:soapenv,attr"`
	PartnerNS string    `xml:"xmlns:urn,attr"`
	Body      loginBody `xml:"soapenv:Body"`
}

type loginBody struct {
	Login loginRequest `xml:"urn:login"`
}

type loginRequest struct {
	Username string `xml:"urn:username"`
	Password string `xml:"urn:password"`
}

type sessionHeader struct {
	Session struct {
		SessionID string `xml:"urn:sessionId"`
	} `xml:"urn:SessionHeader"`
}

type queryEnvelope struct {
	XMLName   xml.Name      `xml:"soapenv:Envelope"`
	SoapNS    string        `xml:"xmlns:soapenv,attr"`
	PartnerNS string        `xml:"xmlns:urn,attr"`
	Header    sessionHeader `xml:"soapenv:Header"`
	Body      queryBody     `xml:"soapenv:Body"`
}

type queryBody struct {
	Query queryRequest `xml:"urn:query"`
}

type queryRequest struct {
	QueryString string `xml:"urn:queryString"`
}

type convertLeadEnvelope struct {
	XMLName   xml.Name        `xml:"soapenv:Envelope"`
	SoapNS    string          `xml:"xmlns:soapenv,attr"`
	PartnerNS string          `xml:"xmlns:urn,attr"`
	Header    sessionHeader   `xml:"soapenv:Header"`
	Body      convertLeadBody `xml:"soapenv:Body"`
}

type convertLeadBody struct {
	ConvertLead convertLeadRequest `xml:"urn:convertLead"`
}

type convertLeadRequest struct {
	LeadConverts []leadConvert `xml:"urn:leadConverts"`
}

type leadConvert struct {
	LeadID                 string `xml:"urn:leadId"`
	ConvertedStatus        string `xml:"urn:convertedStatus"`
	DoNotCreateOpportunity bool   `xml:"urn:doNotCreateOpportunity"`
}

type logoutEnvelope struct {
	XMLName   xml.Name      `xml:"soapenv:Envelope"`
	SoapNS    string        `xml:"xmlns:soapenv,attr"`
	PartnerNS string        `xml:"xmlns:urn,attr"`
	Header    sessionHeader `xml:"soapenv:Header"`
	Body      logoutBody    `xml:"soapenv:Body"`
}

type logoutBody struct {
	Logout struct{} `xml:"urn:logout"`
}

// ---------- Responses ----------

type soapFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

type loginResponse struct {
	Fault  *soapFault   `xml:"Body>Fault"`
	Result *loginResult `xml:"Body>loginResponse>result"`
}

type loginResult struct {
	ServerURL string `xml:"serverUrl"`
	SessionID string `xml:"sessionId"`
}

type queryResponse struct {
	Fault   *soapFault         `xml:"Body>Fault"`
	Records []leadStatusRecord `xml:"Body>queryResponse>result>records"`
}

type leadStatusRecord struct {
	MasterLabel string `xml:"MasterLabel"`
}

type convertLeadResponse struct {
	Fault   *soapFault         `xml:"Body>Fault"`
	Results []ConversionResult `xml:"Body>convertLeadResponse>result"`
}


type logoutResponse struct {
	Fault *soapFault `xml:"Body>Fault"`
}

// ConversionResult é o resultado bruto do convertLead, como o Salesforce
// devolve. Rejeições de regra de negócio chegam aqui com Success=false,
// nunca como erro de transporte.
type ConversionResult struct {
	Success       bool          `xml:"success"`
	LeadID        string        `xml:"leadId"`
	AccountID     string        `xml:"accountId"`
	ContactID     string        `xml:"contactId"`
	OpportunityID string        `xml:"opportunityId"` // vazio com doNotCreateOpportunity
	Errors        []ResultError `xml:"errors"`
}

type ResultError struct {
	StatusCode string `xml:"statusCode"`
	Message    string `xml:"message"`
}
