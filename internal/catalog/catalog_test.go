package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/google/go-cmp/cmp"
)

const sample = "poem_id\ttitle\tpoet\ttext\n" +
	"2\t먼 후일\t김소월\t먼 훗날 당신이 찾으시면 \n" +
	"1\t진달래꽃\t김소월\t나 보기가 역겨워\n" +
	"1\t진달래꽃\t김소월\t  말없이 고이 보내 드리우리다\n" +
	"x\t깨진 행\t누군가\t무시됨\n" +
	"\n" +
	"3\t\t\t\"따옴표\" 그대로\n" +
	"2\t다른 제목\t다른 시인\t그때에 내 말이 \"잊었노라\"\r\n" +
	"4\n"

func TestParseGroupsRowsById(t *testing.T) {
	poems, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []domain.Poem{
		{ID: 1, Title: "진달래꽃", Author: "김소월", Content: "나 보기가 역겨워\n\n말없이 고이 보내 드리우리다"},
		{ID: 2, Title: "먼 후일", Author: "김소월", Content: "먼 훗날 당신이 찾으시면\n\n그때에 내 말이 \"잊었노라\""},
		{ID: 3, Title: UntitledPlaceholder, Author: UnknownPoet, Content: "\"따옴표\" 그대로"},
		{ID: 4, Title: UntitledPlaceholder, Author: UnknownPoet, Content: ""},
	}
	if diff := cmp.Diff(want, poems); diff != "" {
		t.Fatalf("poems mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGroupingProperty(t *testing.T) {
	poems, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	seen := make(map[int]bool)
	for i, p := range poems {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
		if i > 0 && poems[i-1].ID >= p.ID {
			t.Fatalf("poems not ordered by id: %d before %d", poems[i-1].ID, p.ID)
		}
	}
}

func TestParseRequiresIDColumn(t *testing.T) {
	if _, err := Parse(strings.NewReader("title\ttext\na\tb\n")); err == nil {
		t.Fatal("expected error for missing poem_id column")
	}
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseHeaderOrderAndBOM(t *testing.T) {
	data := "\ufefftext\tpoet\tpoem_id\textra\ttitle\n본문\t시인\t9\t?\t제목\n"
	poems, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []domain.Poem{{ID: 9, Title: "제목", Author: "시인", Content: "본문"}}
	if diff := cmp.Diff(want, poems); diff != "" {
		t.Fatalf("poems mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poems.tsv")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}

	p, err := c.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}
	if p.Title != "먼 후일" {
		t.Fatalf("Get(2).Title = %q", p.Title)
	}

	if _, err := c.Get(42); !errors.Is(err, ErrPoemNotFound) {
		t.Fatalf("Get(42) error = %v, want ErrPoemNotFound", err)
	}
}

func TestListIsACopy(t *testing.T) {
	c := New([]domain.Poem{{ID: 1, Title: "a"}})
	list := c.List()
	list[0].Title = "changed"
	if got, _ := c.Get(1); got.Title != "a" {
		t.Fatalf("catalog mutated through List: %q", got.Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.tsv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
