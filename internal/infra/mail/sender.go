package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

// reportTemplate fica embutido: o job roda como binário único agendado,
// sem diretório templates/ ao lado.
const reportTemplate = `Run {{.RunID}} do job de conversão de leads terminou com falhas.

Convertidos:     {{.Converted}}
Com erro:        {{.Failed}}
Não resolvidos:  {{.Unresolved}}

Detalhes por lead em JOBS.SF_Leads_Conversion_Errors (Error_Date de hoje).
`

type reportData struct {
	RunID      string
	Converted  int
	Failed     int
	Unresolved int
}

type ReportSender struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

func NewReportSender(host string, port int, user, password, to string) *ReportSender {
	return &ReportSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		To:       to,
	}
}

// SendRunReport manda um resumo para a operação quando o run fecha com
// falhas. Best-effort: erro aqui não muda o destino de nenhum lead.
func (s *ReportSender) SendRunReport(runID string, converted, failed, unresolved int) error {
	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	var body bytes.Buffer
	data := reportData{RunID: runID, Converted: converted, Failed: failed, Unresolved: unresolved}
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@securesite.com.br")
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("⚠️ Conversão de leads: %d falha(s) no run %s", failed, runID))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
