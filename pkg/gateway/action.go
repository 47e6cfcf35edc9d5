package gateway

import (
	"errors"
	"strings"
)

// EditKind names an AI edit.
type EditKind string

const (
	ActionRephrase   EditKind = "rephrase"
	ActionTranslate  EditKind = "translate"
	ActionFixGrammar EditKind = "fix-grammar"
)

// EditAction is a closed variant: rephrase, fix-grammar, or translate with a
// target language. Build one with Rephrase, FixGrammar, Translate or
// ParseEditAction; the zero value is invalid.
type EditAction struct {
	kind     EditKind
	language string
}

// Rephrase rewrites the text in different words.
func Rephrase() EditAction { return EditAction{kind: ActionRephrase} }

// FixGrammar corrects grammar and spelling.
func FixGrammar() EditAction { return EditAction{kind: ActionFixGrammar} }

// Translate translates the text into language.
func Translate(language string) EditAction {
	return EditAction{kind: ActionTranslate, language: strings.TrimSpace(language)}
}

// ParseEditAction builds an action from its wire form. The language is only
// kept for translate.
func ParseEditAction(action, language string) (EditAction, error) {
	switch EditKind(strings.ToLower(strings.TrimSpace(action))) {
	case ActionRephrase:
		return Rephrase(), nil
	case ActionFixGrammar, "fix grammar", "fix_grammar":
		return FixGrammar(), nil
	case ActionTranslate:
		a := Translate(language)
		if err := a.validate(OpEdit); err != nil {
			return EditAction{}, err
		}
		return a, nil
	default:
		return EditAction{}, invalidInput(OpEdit, "action", errors.New("must be one of rephrase, translate, fix-grammar"))
	}
}

// Kind returns the action kind.
func (a EditAction) Kind() EditKind { return a.kind }

// Language returns the translation target, empty for other kinds.
func (a EditAction) Language() string { return a.language }

func (a EditAction) String() string {
	if a.kind == ActionTranslate {
		return string(a.kind) + ":" + a.language
	}
	return string(a.kind)
}

func (a EditAction) validate(op string) error {
	switch a.kind {
	case ActionRephrase, ActionFixGrammar:
		return nil
	case ActionTranslate:
		if a.language == "" {
			return invalidInput(op, "language", errors.New("required when action is translate"))
		}
		return nil
	default:
		return invalidInput(op, "action", errors.New("must be one of rephrase, translate, fix-grammar"))
	}
}
