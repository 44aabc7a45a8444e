package templates

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerissecure/votive/lunar"
	"github.com/aerissecure/votive/member"
)

func testMember(name string, age int, status string) member.Member {
	return member.Member{
		Person:       member.Person{ID: name, Title: member.DefaultTitle, Name: name, Sex: lunar.Male},
		Age:          age,
		StemBranch:   "Canh Ngọ",
		GuardianStar: "Thái Âm",
		Affliction:   "Ngũ Hộ",
		CyclicStatus: status,
		CyclicStar:   "Điếu Khách",
	}
}

func testDatum(members ...member.Member) Datum {
	return Datum{
		Address: "hà nội",
		Prayer:  "gia đạo bình an, vạn sự như ý.",
		Year:    "Giáp Thìn",
		Month:   1,
		Day:     15,
		Members: members,
	}
}

func TestNew(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"cau_an", "dang_sao", "hinh_nhan", "gia_tien", "le_phat",
		"le_mau", "than_tai", "tao_quan", "tat_nien", "giao_thua",
	}, r.IDs())

	hn, err := r.Get("hinh_nhan")
	require.NoError(t, err)
	assert.True(t, hn.PerMember)
	assert.Equal(t, "HÌNH NHÂN SỚ", hn.Title)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	_, err = r.Render("nope", Datum{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestRenderEveryTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	d := testDatum(testMember("Nguyễn Văn A", 35, lunar.Afflicted))
	for _, id := range r.IDs() {
		t.Run(id, func(t *testing.T) {
			out, err := r.Render(id, d)
			require.NoError(t, err)
			assert.Contains(t, out, "\n", "rendered text must arrive pre-broken")
			assert.NotContains(t, out, "<no value>")
		})
	}
}

func TestRenderCauAn(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	out, err := r.Render("cau_an", testDatum(testMember("Nguyễn Văn A", 35, lunar.Afflicted)))
	require.NoError(t, err)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "\t\t\t\t\t\t\t\t\tPhục Dĩ", lines[0])
	assert.Equal(t, "^Việt ^Nam ^Quốc ^Hà ^Nội", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "Mõ Hạc Linh Từ Thượng Phụng"))
	assert.Equal(t, "^Tín ^chủ ^NGUYỄN ^VĂN ^A ^35 ^Tuổi ^* ^Đồng ^Gia ^Quyền ^Đẳng ^Gia ^Đạo ^Bình ^An ^Vạn ^Sự ^Như ^Ý", lines[6])

	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "Thiên Vận Giáp Thìn \t\t\tNiên 1 Nguyệt 15"))
	assert.True(t, strings.HasSuffix(last, "^TÍN ^CHỦ ^NGUYỄN ^VĂN ^A"))
}

func TestRenderSplitsLongRoster(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	tmpl, err := r.Get("cau_an")
	require.NoError(t, err)

	one, err := tmpl.Render(testDatum(testMember("A", 30, lunar.Received)))
	require.NoError(t, err)

	many := testDatum(
		testMember("Nguyễn Văn A", 35, lunar.Received),
		testMember("Trần Thị B", 33, lunar.Received),
		testMember("Nguyễn Văn C", 10, lunar.Received),
		testMember("Nguyễn Thị D", 8, lunar.Received),
	)
	split, err := tmpl.Render(many)
	require.NoError(t, err)

	oneLines := strings.Split(one, "\n")
	splitLines := strings.Split(split, "\n")
	require.Len(t, splitLines, len(oneLines)+1)

	var ref string
	for _, c := range tmpl.Columns {
		if c.ID == "c8" {
			ref = c.Text
		}
	}
	width := len(strings.Fields(ref))
	first, second := strings.Fields(splitLines[6]), strings.Fields(splitLines[7])
	assert.Len(t, first, width)
	assert.LessOrEqual(t, len(second), width)
	assert.Equal(t, "^Tín", first[0])
}

func TestRenderDangSaoPerMemberLines(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	d := testDatum(
		testMember("Nguyễn Văn A", 35, lunar.Afflicted),
		testMember("Trần Thị B", 33, lunar.Received),
	)
	out, err := r.Render("dang_sao", d)
	require.NoError(t, err)

	assert.Contains(t, out, "^Tín ^chủ ^NGUYỄN ^VĂN ^A ^Sinh ^Ư ^Canh ^Ngọ ^Niên ^35 ^Tuổi ^Chiếu ^Sao ^Thái ^Âm ^Sở ^Bị ^Điếu ^Khách ^Tướng ^Quan ^Chiếu ^Lộc ^Ngũ ^Hộ ^Tinh ^Quân ^Chiếu ^Hạn\n")
	assert.Contains(t, out, "^Sở ^Được ^Điếu ^Khách ^Tinh ^Quân ^Chiếu ^Mệnh ^Ngũ ^Hộ")
}

func TestRenderHinhNhanUsesFirstMember(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	out, err := r.Render("hinh_nhan", testDatum(testMember("Lê Văn E", 0, lunar.Placeholder)))
	require.NoError(t, err)
	assert.Contains(t, out, "^LÊ ^VĂN ^E ^Sinh ^Ư ^Canh ^Ngọ ^Niên ^Tuổi")
	assert.Contains(t, out, "^Tiến ^Hình ^Hình ^Nhân")
}

func TestRenderFlow(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	d := testDatum(testMember("Nguyễn Văn A", 35, lunar.Received))
	d.Prayer = ""
	out, err := r.Render("than_tai", d)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Phục dĩ\nTài thần\n"))
	assert.Contains(t, out, "Kim thần\nTín chủ NGUYỄN VĂN A 35 Tuổi * \nKinh doanh\ntại:\nhà nội.\n")
	assert.True(t, strings.HasSuffix(out, "đại lợi.\nCẩn tấu."))

	d.Prayer = "cầu an, phát tài."
	out, err = r.Render("than_tai", d)
	require.NoError(t, err)
	assert.Contains(t, out, "đại lợi.\ncầu an,\nphát tài.")

	out, err = r.Render("giao_thua", d)
	require.NoError(t, err)
	assert.Contains(t, out, "năm Giáp Thìn\n")
}

func TestRosterText(t *testing.T) {
	assert.Equal(t, EmptyRoster, RosterText(nil))

	m := testMember("trần b", 20, lunar.Received)
	m.Title = ""
	assert.Equal(t, "Tín chủ TRẦN B 20 Tuổi * ", RosterText([]member.Member{m}))
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"empty", ``},
		{"missing title", "[[template]]\nid = \"a\"\nbody = \"x\""},
		{"duplicate", "[[template]]\nid = \"a\"\ntitle = \"A\"\nbody = \"x\"\n[[template]]\nid = \"a\"\ntitle = \"A\"\nbody = \"y\""},
		{"body and columns", "[[template]]\nid = \"a\"\ntitle = \"A\"\nbody = \"x\"\n[[template.column]]\nid = \"c0\"\ntext = \"y\""},
		{"unknown split", "[[template]]\nid = \"a\"\ntitle = \"A\"\n[[template.column]]\nid = \"c0\"\ntext = \"y\"\nsplit = \"c9\""},
		{"bad template", "[[template]]\nid = \"a\"\ntitle = \"A\"\nbody = \"{{.Nope\""},
		{"bad toml", "[[template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			assert.Error(t, err)
		})
	}
}

func TestParseFileCustomCatalog(t *testing.T) {
	path := t.TempDir() + "/catalog.toml"
	body := "[[template]]\nid = \"thu\"\ntitle = \"THỬ\"\nbody = \"Phục dĩ\\n{{roster .Members}}\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	r, err := ParseFile(path)
	require.NoError(t, err)
	out, err := r.Render("thu", Datum{})
	require.NoError(t, err)
	assert.Equal(t, "Phục dĩ\n"+EmptyRoster, out)

	_, err = ParseFile(t.TempDir() + "/missing.toml")
	assert.Error(t, err)
}
