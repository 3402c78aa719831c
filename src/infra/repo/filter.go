package repo

import (
	"strconv"
	"strings"

	"diarybook/src/core/domain"
)

// predicate is a WHERE clause with its positional arguments.
// Count and List must be built from the same value so totals match the window.
type predicate struct {
	where string
	args  []any
}

type predicateBuilder struct {
	clauses []string
	args    []any
}

// arg binds v and returns its placeholder.
func (b *predicateBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *predicateBuilder) and(clause string) {
	b.clauses = append(b.clauses, clause)
}

func (b *predicateBuilder) build() predicate {
	return predicate{
		where: strings.Join(b.clauses, " AND "),
		args:  b.args,
	}
}

// next returns the placeholder that the next bound argument will get.
func (p predicate) next(offset int) string {
	return "$" + strconv.Itoa(len(p.args)+offset)
}

// buildFilter composes the ownership clause with the optional text and date criteria.
// A Clear filter returns the ownership clause alone regardless of other fields.
func buildFilter(ownerID int64, f domain.EntryFilter) predicate {
	var b predicateBuilder
	b.and("user_id = " + b.arg(ownerID))

	if f.Clear {
		return b.build()
	}

	if text := domain.TrimText(f.Text); text != "" {
		p := b.arg("%" + escapeLike(text) + "%")
		b.and("(title ILIKE " + p + " OR content ILIKE " + p + ")")
	}
	if f.From != nil {
		b.and("created_at >= " + b.arg(domain.StartOfDay(*f.From)))
	}
	if f.To != nil {
		b.and("created_at <= " + b.arg(domain.EndOfDay(*f.To)))
	}

	return b.build()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
