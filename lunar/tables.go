package lunar

// Tables holds the fixed ordered lists the calculator indexes into. Arrays
// (not slices) so a Tables value is copied whole and cannot be mutated
// through a shared reference.
//
// Index 0 of Stems and Branches corresponds to year%10 == 0 and
// year%12 == 0. That puts Canh/Thân at the origin, which matches the
// traditional cycle (1990 -> Canh Ngọ, 2024 -> Giáp Thìn).
type Tables struct {
	Stems            [10]string
	Branches         [12]string
	GuardianMale     [9]string
	GuardianFemale   [9]string
	AfflictionMale   [8]string
	AfflictionFemale [8]string
	Cyclic           [12]Cyclic
}

// DefaultTables returns the tables used by the Vietnamese tradition.
func DefaultTables() Tables {
	return Tables{
		Stems: [10]string{"Canh", "Tân", "Nhâm", "Quý", "Giáp", "Ất", "Bính", "Đinh", "Mậu", "Kỷ"},
		Branches: [12]string{
			"Thân", "Dậu", "Tuất", "Hợi", "Tý", "Sửu",
			"Dần", "Mão", "Thìn", "Tỵ", "Ngọ", "Mùi",
		},
		GuardianMale: [9]string{
			"La Hầu", "Thổ Tú", "Thủy Diệu", "Thái Bạch", "Thái Dương",
			"Vân Hớn", "Kế Đô", "Thái Âm", "Mộc Đức",
		},
		GuardianFemale: [9]string{
			"Kế Đô", "Vân Hớn", "Mộc Đức", "Thái Âm", "Thổ Tú",
			"La Hầu", "Thái Dương", "Thái Bạch", "Thủy Diệu",
		},
		AfflictionMale: [8]string{
			"Huỳnh Tuyền", "Tam Kheo", "Ngũ Hộ", "Thiên Tinh",
			"Toán Tận", "Thiên La", "Địa Võng", "Diêm Vương",
		},
		AfflictionFemale: [8]string{
			"Toán Tận", "Thiên Tinh", "Ngũ Hộ", "Tam Kheo",
			"Huỳnh Tuyền", "Diêm Vương", "Địa Võng", "Thiên La",
		},
		Cyclic: [12]Cyclic{
			{Afflicted, "Bệnh Phù"}, {Received, "Thái Tuế"}, {Received, "Thái Dương"},
			{Afflicted, "Tang Môn"}, {Received, "Thái Âm"}, {Afflicted, "Quan Phù"},
			{Afflicted, "Tử Phù"}, {Afflicted, "Tế Phù"}, {Received, "Long Đức"},
			{Afflicted, "Bạch Hổ"}, {Received, "Phúc Đức"}, {Afflicted, "Điếu Khách"},
		},
	}
}
