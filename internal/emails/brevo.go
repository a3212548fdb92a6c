package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender `json:"sender"`
	To          []BrevoTo   `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Sender sends customer notifications. A nil Sender is a no-op.
type Sender interface {
	SendMailNotice(ctx context.Context, toEmail, customerName, serialNumber, message string) error
	SendFilingNotice(ctx context.Context, toEmail, companyName, fileNumber, subject string) error
	SendCaseProgress(ctx context.Context, toEmail, companyName, caseNumber, status string) error
}

// BrevoClient sends emails via the Brevo (Sendinblue) API. Env:
// SENDINBLUE_API_KEY, MAIL_FROM. Empty API key disables sending.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@smartfirm.tw"
}

func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "SmartFirm"},
		To:          []BrevoTo{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendMailNotice tells a customer that a piece of mail arrived at the
// office and was logged under the given serial number.
func (c *BrevoClient) SendMailNotice(ctx context.Context, toEmail, customerName, serialNumber, message string) error {
	if c.APIKey == "" {
		return nil
	}
	content := mailNoticeContent(customerName, serialNumber, message)
	return c.send(ctx, toEmail, "事務所來信通知 / Incoming mail notice", EmailLayout(content))
}

// SendFilingNotice tells a customer that a tax filing document is ready.
func (c *BrevoClient) SendFilingNotice(ctx context.Context, toEmail, companyName, fileNumber, subject string) error {
	if c.APIKey == "" {
		return nil
	}
	content := filingNoticeContent(companyName, fileNumber)
	return c.send(ctx, toEmail, subject, EmailLayout(content))
}

// SendCaseProgress tells a customer about registration case progress.
func (c *BrevoClient) SendCaseProgress(ctx context.Context, toEmail, companyName, caseNumber, status string) error {
	if c.APIKey == "" {
		return nil
	}
	content := caseProgressContent(companyName, caseNumber, status)
	return c.send(ctx, toEmail, "登記案件進度通知 / Case progress update", EmailLayout(content))
}

func mailNoticeContent(customerName, serialNumber, message string) string {
	extra := ""
	if message != "" {
		extra = fmt.Sprintf(`<p>%s</p>`, EscapeHTML(message))
	}
	return fmt.Sprintf(`
    <h1>來信通知</h1>
    <p>%s 您好，</p>
    <p>事務所今日收到您的郵件，已登錄編號 <strong>%s</strong>。</p>
    %s
    <p>如有疑問請與承辦助理聯繫。</p>
`, EscapeHTML(customerName), EscapeHTML(serialNumber), extra)
}

func filingNoticeContent(companyName, fileNumber string) string {
	return fmt.Sprintf(`
    <h1>申報資料通知</h1>
    <p>%s 您好，</p>
    <p>貴公司的申報資料（檔號 <strong>%s</strong>）已完成，請至客戶專區下載。</p>
`, EscapeHTML(companyName), EscapeHTML(fileNumber))
}

func caseProgressContent(companyName, caseNumber, status string) string {
	return fmt.Sprintf(`
    <h1>案件進度通知</h1>
    <p>%s 您好，</p>
    <p>登記案件 <strong>%s</strong> 目前狀態：%s。</p>
`, EscapeHTML(companyName), EscapeHTML(caseNumber), EscapeHTML(status))
}
