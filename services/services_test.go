package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

func TestMailerSendEmail(t *testing.T) {
	var got ResendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer key, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	m, err := NewMailer("key", "Site <noreply@site.dev>")
	if err != nil {
		t.Fatal(err)
	}
	m.endpoint = srv.URL

	if err := m.SendEmail(context.Background(), "Hi", "<p>x</p>", []string{"me@site.dev"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Subject != "Hi" || got.From != "Site <noreply@site.dev>" || len(got.To) != 1 {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestMailerReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	m, _ := NewMailer("key", "from@site.dev")
	m.endpoint = srv.URL

	err := m.SendEmail(context.Background(), "Hi", "x", []string{"me@site.dev"})
	if err == nil || !strings.Contains(err.Error(), "invalid from") {
		t.Errorf("expected API error, got %v", err)
	}
	if err := m.SendEmail(context.Background(), "Hi", "x", nil); err == nil {
		t.Error("expected an error without recipients")
	}
}

func TestNewMailerRequiresConfig(t *testing.T) {
	if _, err := NewMailer("", "from@site.dev"); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := NewMailer("key", ""); err == nil {
		t.Error("expected error without sender")
	}
}

type fakeTwilio struct {
	params *openapi.CreateMessageParams
	err    error
}

func (f *fakeTwilio) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMSSender(t *testing.T) {
	fake := &fakeTwilio{}
	s := &SMSSender{api: fake, from: "+15550000"}

	if err := s.SendSMS(context.Background(), "+15551111", "hello"); err != nil {
		t.Fatal(err)
	}
	if *fake.params.To != "+15551111" || *fake.params.From != "+15550000" || *fake.params.Body != "hello" {
		t.Errorf("unexpected params %+v", fake.params)
	}

	fake.err = errors.New("boom")
	if err := s.SendSMS(context.Background(), "+1", "x"); err == nil {
		t.Error("expected error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.SendSMS(ctx, "+1", "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: %v", err)
	}
}

type countingNotifier struct {
	calls atomic.Int32
	err   error
}

func (c *countingNotifier) Notify(context.Context, Notification) error {
	c.calls.Add(1)
	return c.err
}

func TestNotifiersReachEveryChannel(t *testing.T) {
	failing := &countingNotifier{err: errors.New("smtp down")}
	ok := &countingNotifier{}

	err := Notifiers{failing, ok}.Notify(context.Background(), Notification{Subject: "s"})
	if err == nil {
		t.Error("expected the failing channel's error")
	}
	if failing.calls.Load() != 1 || ok.calls.Load() != 1 {
		t.Errorf("calls = %d, %d; every channel should run", failing.calls.Load(), ok.calls.Load())
	}
	if err := (Notifiers{}).Notify(context.Background(), Notification{}); err != nil {
		t.Errorf("empty notifiers: %v", err)
	}
}

func TestContactNotificationEscapesHTML(t *testing.T) {
	n := ContactNotification("<b>Eve</b>", "eve@x.dev", "line1\nline2")
	if strings.Contains(n.HTML, "<b>Eve</b>") {
		t.Error("name must be escaped")
	}
	if !strings.Contains(n.HTML, "line1<br>line2") {
		t.Errorf("newlines not converted: %s", n.HTML)
	}
	long := ContactNotification("a", "a@x.dev", strings.Repeat("x", 500))
	if got := len([]rune(long.Text)); got > 300 {
		t.Errorf("sms text too long: %d", got)
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestUploader(t *testing.T) {
	fake := &fakePutter{}
	u := NewUploader(fake, "assets", "https://cdn.site.dev/")

	url, err := u.Upload(context.Background(), "Logo.PNG", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "https://cdn.site.dev/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q", url)
	}
	if *fake.input.Bucket != "assets" || *fake.input.ContentType != "image/png" || fake.body != "png-bytes" {
		t.Errorf("unexpected put %+v", fake.input)
	}
	if !strings.HasSuffix(url, *fake.input.Key) {
		t.Errorf("url %q does not end with key %q", url, *fake.input.Key)
	}
}
