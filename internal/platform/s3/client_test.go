package s3

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 XML-protocol requests.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	})

	return &Client{s3: client, region: "us-east-1"}
}

// xmlResponse is a helper to write S3-style XML responses.
func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

type deleteRequest struct {
	Objects []struct {
		Key string `xml:"Key"`
	} `xml:"Object"`
}

// fakeBucket serves ListObjectsV2 and DeleteObjects for a single bucket,
// returning at most pageSize keys per list page.
type fakeBucket struct {
	name      string
	pageSize  int
	failKeys  map[string]bool
	deleteErr bool

	mu          sync.Mutex
	keys        map[string]bool
	deleteCalls int
}

func newFakeBucket(name string, pageSize int, keys ...string) *fakeBucket {
	b := &fakeBucket{name: name, pageSize: pageSize, keys: map[string]bool{}, failKeys: map[string]bool{}}
	for _, k := range keys {
		b.keys[k] = true
	}
	return b
}

func (b *fakeBucket) remaining() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for k := range b.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (b *fakeBucket) deletes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleteCalls
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.Trim(r.URL.Path, "/") != b.name {
		xmlResponse(w, 404, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist</Message></Error>`)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2":
		b.list(w, r)
	case r.Method == http.MethodPost && r.URL.Query().Has("delete"):
		b.delete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *fakeBucket) list(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	var matching []string
	for k := range b.keys {
		if strings.HasPrefix(k, prefix) {
			matching = append(matching, k)
		}
	}
	sort.Strings(matching)

	start := 0
	if token := r.URL.Query().Get("continuation-token"); token != "" {
		start, _ = strconv.Atoi(token)
	}
	end := min(start+b.pageSize, len(matching))

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	fmt.Fprintf(&body, "<Name>%s</Name><Prefix>%s</Prefix><KeyCount>%d</KeyCount>", b.name, prefix, end-start)
	for _, k := range matching[start:end] {
		fmt.Fprintf(&body, "<Contents><Key>%s</Key><Size>1</Size></Contents>", k)
	}
	if end < len(matching) {
		fmt.Fprintf(&body, "<IsTruncated>true</IsTruncated><NextContinuationToken>%d</NextContinuationToken>", end)
	} else {
		body.WriteString("<IsTruncated>false</IsTruncated>")
	}
	body.WriteString("</ListBucketResult>")
	xmlResponse(w, 200, body.String())
}

func (b *fakeBucket) delete(w http.ResponseWriter, r *http.Request) {
	b.deleteCalls++
	if b.deleteErr {
		xmlResponse(w, 403, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
		return
	}

	data, _ := io.ReadAll(r.Body)
	var req deleteRequest
	if err := xml.Unmarshal(data, &req); err != nil {
		xmlResponse(w, 400, `<Error><Code>MalformedXML</Code></Error>`)
		return
	}

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><DeleteResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	for _, obj := range req.Objects {
		if b.failKeys[obj.Key] {
			fmt.Fprintf(&body, "<Error><Key>%s</Key><Code>AccessDenied</Code><Message>Access Denied</Message></Error>", obj.Key)
			continue
		}
		delete(b.keys, obj.Key)
	}
	body.WriteString("</DeleteResult>")
	xmlResponse(w, 200, body.String())
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		endpoint  string
		accessKey string
		secretKey string
	}{
		{"custom endpoint with static credentials", "http://minio:9000", "access", "secret"},
		{"aws with default credential chain", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := NewClient(tt.endpoint, "eu-central-1", tt.accessKey, tt.secretKey)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.region != "eu-central-1" {
				t.Errorf("expected region eu-central-1, got %s", client.region)
			}
		})
	}
}

func TestListObjects_Paginates(t *testing.T) {
	t.Parallel()

	bucket := newFakeBucket("artifacts", 2, "res-1/a", "res-1/b", "res-1/c", "res-2/a")
	client := testClient(t, bucket)

	keys, err := client.ListObjects(context.Background(), "artifacts", "res-1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"res-1/a", "res-1/b", "res-1/c"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("expected keys %v, got %v", want, keys)
	}
}

func TestPurgePrefix(t *testing.T) {
	t.Parallel()

	bucket := newFakeBucket("artifacts", 2,
		"reservations/res-1/log.txt",
		"reservations/res-1/snapshots/vm-1",
		"reservations/res-1/snapshots/vm-2",
		"reservations/res-10/log.txt",
		"reservations/res-2/log.txt",
	)
	client := testClient(t, bucket)

	deleted, err := client.PurgePrefix(context.Background(), "artifacts", "reservations/res-1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted objects, got %d", deleted)
	}

	want := []string{"reservations/res-10/log.txt", "reservations/res-2/log.txt"}
	if got := bucket.remaining(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected remaining %v, got %v", want, got)
	}
}

func TestPurgePrefix_Empty(t *testing.T) {
	t.Parallel()

	bucket := newFakeBucket("artifacts", 10, "reservations/res-2/log.txt")
	client := testClient(t, bucket)

	deleted, err := client.PurgePrefix(context.Background(), "artifacts", "reservations/res-1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted objects, got %d", deleted)
	}
	if n := bucket.deletes(); n != 0 {
		t.Errorf("expected no delete calls, got %d", n)
	}
}

func TestPurgePrefix_MissingBucket(t *testing.T) {
	t.Parallel()

	client := testClient(t, newFakeBucket("artifacts", 10))

	deleted, err := client.PurgePrefix(context.Background(), "other-bucket", "res-1/")
	if err != nil {
		t.Fatalf("expected a missing bucket to be ignored, got %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted objects, got %d", deleted)
	}
}

func TestPurgePrefix_RequiresPrefix(t *testing.T) {
	t.Parallel()

	client := testClient(t, newFakeBucket("artifacts", 10, "a"))

	if _, err := client.PurgePrefix(context.Background(), "artifacts", ""); err == nil {
		t.Fatal("expected error for empty prefix")
	}
}

func TestPurgePrefix_PartialFailure(t *testing.T) {
	t.Parallel()

	bucket := newFakeBucket("artifacts", 10, "res-1/a", "res-1/b", "res-1/c")
	bucket.failKeys["res-1/b"] = true
	client := testClient(t, bucket)

	deleted, err := client.PurgePrefix(context.Background(), "artifacts", "res-1/")
	if err == nil {
		t.Fatal("expected error for object that could not be deleted")
	}
	if !strings.Contains(err.Error(), "first res-1/b: Access Denied") {
		t.Errorf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted objects, got %d", deleted)
	}
}

func TestPurgePrefix_DeleteError(t *testing.T) {
	t.Parallel()

	bucket := newFakeBucket("artifacts", 10, "res-1/a")
	bucket.deleteErr = true
	client := testClient(t, bucket)

	deleted, err := client.PurgePrefix(context.Background(), "artifacts", "res-1/")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "AccessDenied" {
		t.Errorf("expected AccessDenied api error, got %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted objects, got %d", deleted)
	}
}

func TestDeleteObjects_Batches(t *testing.T) {
	t.Parallel()

	keys := make([]string, 2500)
	for i := range keys {
		keys[i] = fmt.Sprintf("obj-%04d", i)
	}
	bucket := newFakeBucket("artifacts", 1000, keys...)
	client := testClient(t, bucket)

	deleted, err := client.DeleteObjects(context.Background(), "artifacts", keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2500 {
		t.Errorf("expected 2500 deleted objects, got %d", deleted)
	}
	if n := bucket.deletes(); n != 3 {
		t.Errorf("expected 3 delete calls, got %d", n)
	}
}

type fakeAPIError struct{ code string }

func (e fakeAPIError) Error() string                 { return e.code }
func (e fakeAPIError) ErrorCode() string             { return e.code }
func (e fakeAPIError) ErrorMessage() string          { return e.code }
func (e fakeAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultServer }

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("NoSuchBucket"), false},
		{"no such bucket code", fakeAPIError{"NoSuchBucket"}, true},
		{"not found code", fmt.Errorf("wrapped: %w", fakeAPIError{"NotFound"}), true},
		{"access denied", fakeAPIError{"AccessDenied"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isNotFoundError(tt.err)
			if got != tt.want {
				t.Errorf("isNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}
