// Package schema validates raw JSON payloads against the entity models.
//
// Each field is decoded on its own so that a type error in one field does not
// hide problems in the others. Fields tagged schema:"required" must be present
// in the payload; an empty string counts as present. The value rules (email,
// bounds, enum membership) then run through go-playground/validator. Every
// violated field is reported.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AnshRaj112/mentracare-backend/internal/models"
	"github.com/go-playground/validator/v10"
)

// Kind names a payload shape that can be validated.
type Kind string

const (
	KindUser               Kind = "user"
	KindMood               Kind = "mood"
	KindMoodRequest        Kind = "mood_request"
	KindJournal            Kind = "journal"
	KindJournalRequest     Kind = "journal_request"
	KindMindfulnessSession Kind = "mindfulness_session"
	KindPeerWallPost       Kind = "peer_wall_post"
	KindBadge              Kind = "badge"
	KindMentraBotLog       Kind = "mentrabot_log"
	KindMentraBotRequest   Kind = "mentrabot_request"
	KindAppointment        Kind = "appointment"
	KindGameRecord         Kind = "game_record"
)

// registry maps each kind to a constructor that returns the model with its
// declared defaults already in place. Fields absent from the payload keep them.
var registry = map[Kind]func() any{
	KindUser:               func() any { return models.NewUser() },
	KindMood:               func() any { return &models.Mood{} },
	KindMoodRequest:        func() any { return &models.MoodRequest{} },
	KindJournal:            func() any { return &models.Journal{} },
	KindJournalRequest:     func() any { return &models.JournalRequest{} },
	KindMindfulnessSession: func() any { return &models.MindfulnessSession{} },
	KindPeerWallPost:       func() any { return &models.PeerWallPost{} },
	KindBadge:              func() any { return &models.Badge{} },
	KindMentraBotLog:       func() any { return &models.MentraBotLog{} },
	KindMentraBotRequest:   func() any { return &models.MentraBotRequest{} },
	KindAppointment:        func() any { return models.NewAppointment() },
	KindGameRecord:         func() any { return &models.GameRecord{} },
}

var (
	validate     = newValidator()
	dateTimeType = reflect.TypeOf(models.DateTime{})
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire name.
	v.RegisterTagNameFunc(jsonName)
	return v
}

// Validate decodes raw into a fresh model of the given kind and checks it.
// The returned value is a pointer to the model, e.g. *models.Mood.
func Validate(kind Kind, raw []byte) (any, error) {
	newModel, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("schema: unknown kind %q", kind)
	}
	dst := newModel()
	if err := Decode(kind, raw, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// Decode fills dst (a pointer to a model struct) from raw and validates it.
// Values already set on dst act as defaults for fields missing from raw.
func Decode(kind Kind, raw []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: destination must be a pointer to a struct, got %T", dst)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return &ValidationError{Kind: kind, Fields: []FieldError{{
			Field:   "body",
			Rule:    "json",
			Message: "request body must be a JSON object",
		}}}
	}

	v := rv.Elem()
	t := v.Type()
	order := make(map[string]int, t.NumField())
	reported := make(map[string]bool)
	var errs []FieldError

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := jsonName(sf)
		if name == "" {
			continue
		}
		order[name] = i
		if name == "id" {
			// Identifiers are generated by the store, never taken from the client.
			continue
		}
		rawValue, present := fields[name]
		if !present {
			if isRequired(sf) {
				reported[name] = true
				errs = append(errs, FieldError{Field: name, Rule: "required", Message: "field required"})
			}
			continue
		}
		if sf.Type.Kind() != reflect.Ptr && bytes.Equal(bytes.TrimSpace(rawValue), []byte("null")) {
			reported[name] = true
			errs = append(errs, FieldError{
				Field:   name,
				Rule:    "type",
				Message: "must be " + describeType(sf.Type) + ", not null",
			})
			continue
		}

		target := reflect.New(sf.Type)
		target.Elem().Set(v.Field(i))
		if err := json.Unmarshal(rawValue, target.Interface()); err != nil {
			reported[name] = true
			errs = append(errs, FieldError{
				Field:   name,
				Rule:    "type",
				Message: "must be " + describeType(sf.Type),
			})
			continue
		}
		v.Field(i).Set(target.Elem())
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("schema: validate %s: %w", kind, err)
		}
		for _, fe := range verrs {
			if reported[fe.Field()] {
				continue
			}
			errs = append(errs, fieldError(fe))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	sort.SliceStable(errs, func(i, j int) bool {
		return order[errs[i].Field] < order[errs[j].Field]
	})
	return &ValidationError{Kind: kind, Fields: errs}
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

func isRequired(sf reflect.StructField) bool {
	return sf.Tag.Get("schema") == "required"
}

func fieldError(fe validator.FieldError) FieldError {
	out := FieldError{Field: fe.Field(), Rule: fe.Tag()}
	switch fe.Tag() {
	case "email":
		out.Message = "value is not a valid email address"
	case "gte":
		out.Message = "must be greater than or equal to " + fe.Param()
	case "oneof":
		out.Message = "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		out.Message = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return out
}

func describeType(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == dateTimeType {
		return "a datetime (RFC 3339, YYYY-MM-DDTHH:MM[:SS] or YYYY-MM-DD)"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice:
		return "a list of " + strings.TrimPrefix(strings.TrimPrefix(describeType(t.Elem()), "a "), "an ") + "s"
	default:
		return t.String()
	}
}
