package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withStages(dates map[Stage]string) Record {
	return Record{StageDates: dates}
}

func TestResolve_EmptyRecord(t *testing.T) {
	res := Resolve(Record{})

	assert.Equal(t, "", res.Completion)
	assert.Equal(t, 0, res.Percent)
	assert.Equal(t, CategoryNotStarted, res.Category)
	assert.True(t, res.Inferred)
}

func TestResolve_StageLadder(t *testing.T) {
	tests := []struct {
		name   string
		stages map[Stage]string
		want   string
	}{
		{"drawing only", map[Stage]string{StageDrawing: "1/5"}, ""},
		{"pipe support", map[Stage]string{StagePipeSupport: "2/1"}, "20%"},
		{"welding", map[Stage]string{StagePipeSupport: "2/1", StageWelding: "2/5"}, "30%"},
		{"nde", map[Stage]string{StageNDE: "x"}, "40%"},
		{"sandblast", map[Stage]string{StageSandblast: "3/1"}, "50%"},
		{"assembly", map[Stage]string{StageSandblast: "3/1", StageAssembly: "3/9"}, "60%"},
		{"painting", map[Stage]string{StagePainting: "4/1"}, "85%"},
		{"pressure test", map[Stage]string{StagePressureTest: "4/1"}, "85%"},
		{"whitespace is empty", map[Stage]string{StagePipeSupport: "   "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(withStages(tt.stages))
			assert.Equal(t, tt.want, res.Completion)
			assert.Equal(t, CategoryNotStarted, res.Category)
		})
	}
}

func TestResolve_ManualBands(t *testing.T) {
	t.Run("assembly keeps value inside band", func(t *testing.T) {
		r := withStages(map[Stage]string{StageAssembly: "3/9"})
		r.Completion = "75%"
		assert.Equal(t, "75%", Resolve(r).Completion)
	})

	t.Run("assembly clamps value below band", func(t *testing.T) {
		r := withStages(map[Stage]string{StageAssembly: "3/9"})
		r.Completion = "50%"
		assert.Equal(t, "60%", Resolve(r).Completion)
	})

	t.Run("assembly clamps value above band", func(t *testing.T) {
		r := withStages(map[Stage]string{StageAssembly: "3/9"})
		r.Completion = "81%"
		assert.Equal(t, "60%", Resolve(r).Completion)
	})

	t.Run("finishing keeps value inside band", func(t *testing.T) {
		r := withStages(map[Stage]string{StageAssembly: "3/9", StagePainting: "4/2"})
		r.Completion = "88%"
		assert.Equal(t, "88%", Resolve(r).Completion)
	})

	t.Run("finishing overrides assembly band value", func(t *testing.T) {
		r := withStages(map[Stage]string{StageAssembly: "3/9", StagePressureTest: "4/2"})
		r.Completion = "75%"
		assert.Equal(t, "85%", Resolve(r).Completion)
	})

	t.Run("unparseable manual value counts as zero", func(t *testing.T) {
		r := withStages(map[Stage]string{StageAssembly: "3/9"})
		r.Completion = "about seventy"
		assert.Equal(t, "60%", Resolve(r).Completion)
	})
}

func TestResolve_NoRatchet(t *testing.T) {
	r := withStages(map[Stage]string{StagePipeSupport: "2/1", StageWelding: "2/5", StageNDE: "2/9"})
	first := r.Apply(Resolve(r))
	assert.Equal(t, "40%", first.Completion)

	first.StageDates = map[Stage]string{StagePipeSupport: "2/1"}
	second := Resolve(first)
	assert.Equal(t, "20%", second.Completion)
}

func TestResolve_Categories(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		completion string
		want       Category
	}{
		{"in progress", "A區製作中", "", CategoryInProgress},
		{"in progress but suspended", "製作中 停工", "", CategorySuspended},
		{"pending", "待交站", "", CategoryPending},
		{"suspended", "停工待料", "", CategorySuspended},
		{"handed over", "已交站", "", CategoryCompleted},
		{"handover keyword", "3/1交站", "", CategoryCompleted},
		{"full completion", "", "100%", CategoryCompleted},
		{"nothing", "備料", "", CategoryNotStarted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(Record{StatusText: tt.text, Completion: tt.completion})
			assert.Equal(t, tt.want, res.Category)
		})
	}
}

func TestResolve_ExplicitCategoryWins(t *testing.T) {
	res := Resolve(Record{StatusText: "製作中", StatusCategory: CategorySuspended})
	assert.Equal(t, CategorySuspended, res.Category)
	assert.False(t, res.Inferred)

	res = Resolve(Record{StatusText: "製作中", StatusCategory: "bogus"})
	assert.Equal(t, CategoryInProgress, res.Category)
	assert.True(t, res.Inferred)
}

func TestResolve_PendingFloor(t *testing.T) {
	r := withStages(map[Stage]string{StagePipeSupport: "2/1"})
	r.StatusText = "待交站"
	assert.Equal(t, "95%", Resolve(r).Completion)
}

func TestResolve_CompletedIsFull(t *testing.T) {
	for _, stages := range []map[Stage]string{
		nil,
		{StagePipeSupport: "2/1"},
		{StageAssembly: "3/1", StagePainting: "4/1"},
	} {
		r := withStages(stages)
		r.StatusCategory = CategoryCompleted
		r.Completion = "88%"
		assert.Equal(t, "100%", Resolve(r).Completion)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	records := []Record{
		{},
		withStages(map[Stage]string{StagePipeSupport: "2/1"}),
		{StatusText: "待交站", StageDates: map[Stage]string{StageWelding: "2/5"}},
		{StatusText: "已交站"},
		{Completion: "100%"},
		{Completion: "72%", StageDates: map[Stage]string{StageAssembly: "3/9"}},
		{Completion: "50%", StageDates: map[Stage]string{StagePainting: "4/1"}},
		{StatusText: "停工", Completion: "33%"},
	}
	for _, r := range records {
		once := r.Apply(Resolve(r))
		twice := once.Apply(Resolve(once))
		assert.Equal(t, once.Completion, twice.Completion)
		assert.Equal(t, once.StatusCategory, twice.StatusCategory)
	}
}

func TestParsePercent(t *testing.T) {
	assert.Equal(t, 72, ParsePercent("72%"))
	assert.Equal(t, 72, ParsePercent(" 72.9 % "))
	assert.Equal(t, 0, ParsePercent(""))
	assert.Equal(t, 0, ParsePercent("n/a"))
	assert.Equal(t, 0, ParsePercent("NaN"))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("待交站")
	assert.True(t, ok)
	assert.Equal(t, CategoryPending, c)

	c, ok = ParseCategory("completed")
	assert.True(t, ok)
	assert.Equal(t, CategoryCompleted, c)

	_, ok = ParseCategory("done")
	assert.False(t, ok)
}

func TestCountByCategory(t *testing.T) {
	counts := CountByCategory([]Record{
		{StatusCategory: CategoryPending},
		{StatusCategory: CategoryPending},
		{StatusCategory: ""},
	})
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 2, counts.ByCategory[CategoryPending])
	assert.Equal(t, 1, counts.ByCategory[CategoryNotStarted])
	assert.Equal(t, 0, counts.ByCategory[CategoryCompleted])
	assert.Len(t, counts.ByCategory, len(Categories))
}
