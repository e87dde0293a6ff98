// Package threadfix is a REST client for the central vulnerability server
// translated findings are pushed to.
package threadfix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
)

// ErrRequestFailed is wrapped by every error the server reports through an
// unsuccessful response.
var ErrRequestFailed = errors.New("server request failed")

// Response is the envelope every REST call returns.
type Response struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	ResponseCode int             `json:"responseCode"`
	Object       json.RawMessage `json:"object"`
}

// Team is an organization unit owning applications.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Application is a tracked web application.
type Application struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Task is a queued scan handed to an agent.
type Task struct {
	ID            int    `json:"taskId"`
	TaskType      string `json:"taskType"`
	SecureTaskKey string `json:"secureTaskKey"`
}

// StaticFinding is a finding reported in file space.
type StaticFinding struct {
	VulnType        string
	Severity        string
	NativeID        string
	Parameter       string
	LongDescription string
	FilePath        string
	Column          int
	LineText        string
	LineNumber      int
}

// DynamicFinding is a finding reported in URL space.
type DynamicFinding struct {
	VulnType        string
	Severity        string
	NativeID        string
	Parameter       string
	LongDescription string
	FullURL         string
	Path            string
}

// Client talks to the server REST API. The API key travels as the apiKey
// query parameter of every call.
type Client struct {
	httpc  *resty.Client
	apiKey string
	logger hclog.Logger
}

// New builds a client on top of a configured resty client.
func New(httpc *resty.Client, baseURL, apiKey string, logger hclog.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("server url is not set")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("api key is not set")
	}
	if httpc == nil {
		httpc = resty.New()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	httpc.SetBaseURL(strings.TrimRight(baseURL, "/"))
	httpc.SetHeader("Accept", "application/json")

	return &Client{httpc: httpc, apiKey: apiKey, logger: logger}, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.httpc.R().
		SetContext(ctx).
		SetQueryParam("apiKey", c.apiKey)
}

// do sends the request and unwraps the envelope, decoding Object into out when
// out is not nil.
func (c *Client) do(req *resty.Request, method, path string, out interface{}) (*Response, error) {
	var r Response
	req.SetResult(&r).SetError(&r)

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.logger.Debug("server response", "method", method, "path", path, "status", resp.StatusCode(), "success", r.Success)

	if resp.IsError() || !r.Success {
		msg := r.Message
		if msg == "" {
			msg = resp.Status()
		}
		return &r, fmt.Errorf("%w: %s %s: %s", ErrRequestFailed, method, path, msg)
	}

	if out != nil && len(r.Object) > 0 {
		if err := json.Unmarshal(r.Object, out); err != nil {
			return &r, fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	return &r, nil
}

// CreateTeam creates a team.
func (c *Client) CreateTeam(ctx context.Context, name string) (*Team, error) {
	var t Team
	req := c.request(ctx).SetFormData(map[string]string{"name": name})
	if _, err := c.do(req, resty.MethodPost, "/teams/new", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SearchTeamByName looks a team up by name.
func (c *Client) SearchTeamByName(ctx context.Context, name string) (*Team, error) {
	var t Team
	req := c.request(ctx).SetQueryParam("name", name)
	if _, err := c.do(req, resty.MethodGet, "/teams/lookup", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateApplication creates an application under a team.
func (c *Client) CreateApplication(ctx context.Context, teamID int, name, url string) (*Application, error) {
	var a Application
	req := c.request(ctx).SetFormData(map[string]string{"name": name, "url": url})
	path := fmt.Sprintf("/teams/%d/applications/new", teamID)
	if _, err := c.do(req, resty.MethodPost, path, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SearchApplicationByName looks an application up by its name and team.
func (c *Client) SearchApplicationByName(ctx context.Context, name, teamName string) (*Application, error) {
	var a Application
	req := c.request(ctx).
		SetQueryParam("name", name).
		SetPathParam("team", teamName)
	if _, err := c.do(req, resty.MethodGet, "/applications/{team}/lookup", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SetParameters stores the framework type and repository URL the server
// uses to merge findings of the application.
func (c *Client) SetParameters(ctx context.Context, appID int, frameworkType, repositoryURL string) error {
	req := c.request(ctx).SetFormData(map[string]string{
		"frameworkType": frameworkType,
		"repositoryUrl": repositoryURL,
	})
	_, err := c.do(req, resty.MethodPost, fmt.Sprintf("/applications/%d/setParameters", appID), nil)
	return err
}

// UploadScan uploads a scanner report file.
func (c *Client) UploadScan(ctx context.Context, appID int, filePath string) error {
	req := c.request(ctx).SetFile("file", filePath)
	_, err := c.do(req, resty.MethodPost, fmt.Sprintf("/applications/%d/upload", appID), nil)
	return err
}

// QueueScan queues a scan of the application with scannerType.
func (c *Client) QueueScan(ctx context.Context, appID int, scannerType string) error {
	req := c.request(ctx).SetFormData(map[string]string{
		"applicationId": strconv.Itoa(appID),
		"scannerType":   scannerType,
	})
	_, err := c.do(req, resty.MethodPost, "/tasks/queueScan", nil)
	return err
}

// AddStaticFinding records a file space finding on the application.
func (c *Client) AddStaticFinding(ctx context.Context, appID int, f StaticFinding) error {
	req := c.request(ctx).SetFormData(map[string]string{
		"vulnType":        f.VulnType,
		"severity":        f.Severity,
		"nativeId":        f.NativeID,
		"parameter":       f.Parameter,
		"longDescription": f.LongDescription,
		"filePath":        f.FilePath,
		"column":          strconv.Itoa(f.Column),
		"lineText":        f.LineText,
		"lineNumber":      strconv.Itoa(f.LineNumber),
	})
	_, err := c.do(req, resty.MethodPost, fmt.Sprintf("/applications/%d/addFinding", appID), nil)
	return err
}

// AddDynamicFinding records a URL space finding on the application.
func (c *Client) AddDynamicFinding(ctx context.Context, appID int, f DynamicFinding) error {
	req := c.request(ctx).SetFormData(map[string]string{
		"vulnType":        f.VulnType,
		"severity":        f.Severity,
		"nativeId":        f.NativeID,
		"parameter":       f.Parameter,
		"longDescription": f.LongDescription,
		"fullUrl":         f.FullURL,
		"path":            f.Path,
	})
	_, err := c.do(req, resty.MethodPost, fmt.Sprintf("/applications/%d/addFinding", appID), nil)
	return err
}

// RequestTask asks the server for the next queued task one of scanners can run.
func (c *Client) RequestTask(ctx context.Context, scanners, agentConfig string) (*Task, error) {
	var t Task
	req := c.request(ctx).SetFormData(map[string]string{
		"scanners":    scanners,
		"agentConfig": agentConfig,
	})
	if _, err := c.do(req, resty.MethodPost, "/tasks/requestTask", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CompleteTask uploads the result file of a task.
func (c *Client) CompleteTask(ctx context.Context, taskID int, filePath, secureTaskKey string) error {
	req := c.request(ctx).
		SetFile("file", filePath).
		SetFormData(map[string]string{
			"scanQueueTaskId": strconv.Itoa(taskID),
			"secureTaskKey":   secureTaskKey,
		})
	_, err := c.do(req, resty.MethodPost, "/tasks/completeTask", nil)
	return err
}

// FailTask reports a task as failed.
func (c *Client) FailTask(ctx context.Context, taskID int, message, secureTaskKey string) error {
	req := c.request(ctx).SetFormData(map[string]string{
		"scanQueueTaskId": strconv.Itoa(taskID),
		"message":         message,
		"secureTaskKey":   secureTaskKey,
	})
	_, err := c.do(req, resty.MethodPost, "/tasks/failTask", nil)
	return err
}
