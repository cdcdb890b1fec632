// Package action translates a platform event payload, as delivered to an
// action-style run, into a domain trigger event.
package action

import (
	"os"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ParseEventFile reads the payload file and parses it as the named event
func ParseEventFile(eventName, path string) (*model.TriggerEvent, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read event payload file",
			goerr.T(types.ErrTagCollect),
			goerr.V("path", path),
		)
	}
	return ParseEvent(eventName, payload)
}

// ParseEvent extracts the trigger event from a raw webhook payload. Events
// that cannot name a pull request fail with a collection error; recognized
// events with uninteresting actions come back with IsSupported() == false
// and are skipped by the runner.
func ParseEvent(eventName string, payload []byte) (*model.TriggerEvent, error) {
	parsed, err := github.ParseWebHook(eventName, payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse event payload",
			goerr.T(types.ErrTagCollect),
			goerr.V("event_name", eventName),
		)
	}

	event := &model.TriggerEvent{
		Type: model.TriggerEventType(eventName),
	}

	switch e := parsed.(type) {
	case *github.PullRequestEvent:
		event.Action = e.GetAction()
		event.Owner = e.GetRepo().GetOwner().GetLogin()
		event.Repo = e.GetRepo().GetName()
		event.Number = e.GetPullRequest().GetNumber()
		event.Sender = e.GetSender().GetLogin()

	case *github.IssueCommentEvent:
		if !e.GetIssue().IsPullRequest() {
			return nil, goerr.New("comment is not on a pull request",
				goerr.T(types.ErrTagCollect),
				goerr.V("issue", e.GetIssue().GetNumber()),
			)
		}
		event.Action = e.GetAction()
		event.Owner = e.GetRepo().GetOwner().GetLogin()
		event.Repo = e.GetRepo().GetName()
		event.Number = e.GetIssue().GetNumber()
		event.Sender = e.GetSender().GetLogin()
		event.CommentBody = e.GetComment().GetBody()

	case *github.PullRequestReviewCommentEvent:
		event.Action = e.GetAction()
		event.Owner = e.GetRepo().GetOwner().GetLogin()
		event.Repo = e.GetRepo().GetName()
		event.Number = e.GetPullRequest().GetNumber()
		event.Sender = e.GetSender().GetLogin()
		event.CommentBody = e.GetComment().GetBody()

	default:
		event.Type = model.EventTypeUnknown
		return event, nil
	}

	if event.Owner == "" || event.Repo == "" || event.Number == 0 {
		return nil, goerr.New("event payload is missing required pull request fields",
			goerr.T(types.ErrTagCollect),
			goerr.V("event_name", eventName),
			goerr.V("owner", event.Owner),
			goerr.V("repo", event.Repo),
			goerr.V("number", event.Number),
		)
	}

	return event, nil
}
