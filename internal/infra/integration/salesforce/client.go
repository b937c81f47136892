package salesforce

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	apiVersion = "58.0"

	// DefaultConvertedStatus é o fallback quando a org não devolve nenhum
	// status marcado como IsConverted (valor padrão das orgs Salesforce).
	DefaultConvertedStatus = "Closed - Converted"

	convertedStatusQuery = "SELECT MasterLabel FROM LeadStatus WHERE IsConverted = true ORDER BY SortOrder LIMIT 1"
)

// Client fala a Partner SOAP API do Salesforce: login, query de metadados
// e convertLead. Uma sessão por run: Login no início, Logout no teardown.
type Client struct {
	loginURL      string
	username      string
	password      string
	securityToken string
	http          *http.Client

	sessionID string
	serverURL string
}

func NewClient(loginURL, username, password, securityToken string) *Client {
	return &Client{
		loginURL:      loginURL,
		username:      username,
		password:      password,
		securityToken: securityToken,
		http:          &http.Client{Timeout: 30 * time.Second},
	}
}

// Login autentica e guarda sessionId + serverUrl para as próximas chamadas.
// A senha enviada é senha+securityToken concatenados: regra do Salesforce,
// não reinterpretar.
func (c *Client) Login(ctx context.Context) error {
	envelope := loginEnvelope{
		SoapNS:    soapNS,
		PartnerNS: partnerNS,
		Body: loginBody{
			Login: loginRequest{
				Username: c.username,
				Password: c.password + c.securityToken,
			},
		},
	}

	var response loginResponse
	endpoint := fmt.Sprintf("%s/services/Soap/u/%s", c.loginURL, apiVersion)
	if err := c.soapCall(ctx, endpoint, envelope, &response); err != nil {
		return fmt.Errorf("login no Salesforce falhou: %w", err)
	}
	if response.Fault != nil {
		return fmt.Errorf("login no Salesforce falhou: %s", response.Fault.FaultString)
	}
	if response.Result == nil || response.Result.SessionID == "" {
		return fmt.Errorf("login no Salesforce falhou: resposta sem sessionId")
	}

	c.sessionID = response.Result.SessionID
	c.serverURL = response.Result.ServerURL

	log.Printf("🔑 Salesforce: sessão aberta para %s", c.username)
	return nil
}

// ResolveConvertedStatus busca o MasterLabel do status de lead marcado como
// IsConverted. Resolvido uma única vez por run e reaproveitado em todos os
// convertLead.
func (c *Client) ResolveConvertedStatus(ctx context.Context) (string, error) {
	envelope := queryEnvelope{
		SoapNS:    soapNS,
		PartnerNS: partnerNS,
		Body:      queryBody{Query: queryRequest{QueryString: convertedStatusQuery}},
	}
	envelope.Header.Session.SessionID = c.sessionID

	var response queryResponse
	if err := c.soapCall(ctx, c.serverURL, envelope, &response); err != nil {
		return "", fmt.Errorf("consulta de LeadStatus falhou: %w", err)
	}
	if response.Fault != nil {
		return "", fmt.Errorf("consulta de LeadStatus falhou: %s", response.Fault.FaultString)
	}

	if len(response.Records) == 0 || response.Records[0].MasterLabel == "" {
		log.Printf("⚠️ Salesforce: nenhum LeadStatus convertido na org, usando padrão %q", DefaultConvertedStatus)
		return DefaultConvertedStatus, nil
	}

	return response.Records[0].MasterLabel, nil
}

// ConvertLead converte exatamente um lead. O efeito colateral (criação de
// Account/Contact/Opportunity) acontece todo do lado do Salesforce.
// Resultado nil sem erro significa resposta em formato inesperado; quem
// decide o destino do item é o classificador no usecase.
func (c *Client) ConvertLead(ctx context.Context, leadID, convertedStatus string, createOpportunity bool) (*ConversionResult, error) {
	envelope := convertLeadEnvelope{
		SoapNS:    soapNS,
		PartnerNS: partnerNS,
		Body: convertLeadBody{
			ConvertLead: convertLeadRequest{
				LeadConverts: []leadConvert{
					{
						LeadID:                 leadID,
						ConvertedStatus:        convertedStatus,
						DoNotCreateOpportunity: !createOpportunity,
					},
				},
			},
		},
	}
	envelope.Header.Session.SessionID = c.sessionID

	var response convertLeadResponse
	if err := c.soapCall(ctx, c.serverURL, envelope, &response); err != nil {
		return nil, fmt.Errorf("convertLead %s falhou: %w", leadID, err)
	}
	if response.Fault != nil {
		return nil, fmt.Errorf("convertLead %s falhou: %s", leadID, response.Fault.FaultString)
	}

	if len(response.Results) == 0 {
		return nil, nil
	}

	return &response.Results[0], nil
}

// Logout invalida a sessão. Erro aqui não muda o resultado do run.
func (c *Client) Logout(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}

	envelope := logoutEnvelope{SoapNS: soapNS, PartnerNS: partnerNS}
	envelope.Header.Session.SessionID = c.sessionID

	var response logoutResponse
	err := c.soapCall(ctx, c.serverURL, envelope, &response)

	c.sessionID = ""
	c.serverURL = ""

	if err != nil {
		return err
	}
	if response.Fault != nil {
		return fmt.Errorf("logout falhou: %s", response.Fault.FaultString)
	}
	return nil
}

func (c *Client) soapCall(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	raw, err := xml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao montar envelope: %w", err)
	}
	body := append([]byte(xml.Header), raw...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", `""`)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro de transporte: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta: %w", err)
	}

	// SOAP faults chegam com HTTP 500; o envelope ainda é decodificável e o
	// faultstring vale mais que o status.
	if err := xml.Unmarshal(data, out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
		}
		return fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	return nil
}
