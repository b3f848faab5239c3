package coverage

// InsuranceCompany is one entry of the static insurer catalog. IDs double as
// the Organization resource IDs on the FHIR server, so a Coverage payor
// reference can be resolved back to a display name without extra reads.
type InsuranceCompany struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	NameKa   string `json:"nameKa"`
	NameEn   string `json:"nameEn"`
	NameRu   string `json:"nameRu"`
	Category string `json:"category"`
}

const (
	CategoryPrivate   = "private"
	CategoryState     = "state"
	CategoryCorporate = "corporate"
)

var Companies = []InsuranceCompany{
	{ID: "ins-gpi", Code: "GPI", NameKa: "ჯიპიაი ჰოლდინგი", NameEn: "GPI Holding", NameRu: "Джи Пи Ай Холдинг", Category: CategoryPrivate},
	{ID: "ins-aldagi", Code: "ALD", NameKa: "ალდაგი", NameEn: "Aldagi", NameRu: "Алдаги", Category: CategoryPrivate},
	{ID: "ins-tbc", Code: "TBC", NameKa: "თიბისი დაზღვევა", NameEn: "TBC Insurance", NameRu: "ТиБиСи Страхование", Category: CategoryPrivate},
	{ID: "ins-ardi", Code: "ARD", NameKa: "არდი", NameEn: "Ardi", NameRu: "Арди", Category: CategoryPrivate},
	{ID: "ins-imedi-l", Code: "IML", NameKa: "იმედი ელ", NameEn: "Imedi L", NameRu: "Имеди Эл", Category: CategoryPrivate},
	{ID: "ins-psp", Code: "PSP", NameKa: "პსპ დაზღვევა", NameEn: "PSP Insurance", NameRu: "ПСП Страхование", Category: CategoryPrivate},
	{ID: "ins-unison", Code: "UNI", NameKa: "უნისონი", NameEn: "Unison", NameRu: "Унисони", Category: CategoryPrivate},
	{ID: "ins-irao", Code: "IRA", NameKa: "ირაო", NameEn: "Irao", NameRu: "Ирао", Category: CategoryPrivate},
	{ID: "ins-alpha", Code: "ALP", NameKa: "ალფა", NameEn: "Alpha", NameRu: "Альфа", Category: CategoryPrivate},
	{ID: "ins-euroins", Code: "EUR", NameKa: "ევროინს ჯორჯია", NameEn: "Euroins Georgia", NameRu: "Евроинс Джорджия", Category: CategoryPrivate},
	{ID: "ins-cartu", Code: "CRT", NameKa: "ქართუ დაზღვევა", NameEn: "Cartu Insurance", NameRu: "Карту Страхование", Category: CategoryPrivate},
	{ID: "ins-prime", Code: "PRM", NameKa: "პრაიმ დაზღვევა", NameEn: "Prime Insurance", NameRu: "Прайм Страхование", Category: CategoryPrivate},
	{ID: "ins-global-benefits", Code: "GLB", NameKa: "გლობალ ბენეფიტს ჯორჯია", NameEn: "Global Benefits Georgia", NameRu: "Глобал Бенефитс Джорджия", Category: CategoryPrivate},
	{ID: "ins-green", Code: "GRN", NameKa: "მწვანე დაზღვევა", NameEn: "Green Insurance", NameRu: "Грин Страхование", Category: CategoryPrivate},
	{ID: "ins-hualing", Code: "HUA", NameKa: "ჰუალინგ დაზღვევა", NameEn: "Hualing Insurance", NameRu: "Хуалинг Страхование", Category: CategoryPrivate},
	{ID: "ins-uhc", Code: "UHC", NameKa: "საყოველთაო ჯანდაცვა", NameEn: "Universal Health Coverage", NameRu: "Всеобщее здравоохранение", Category: CategoryState},
	{ID: "ins-moh", Code: "MOH", NameKa: "ჯანდაცვის სამინისტრო", NameEn: "Ministry of Health Program", NameRu: "Программа Минздрава", Category: CategoryState},
	{ID: "ins-veterans", Code: "VET", NameKa: "ვეტერანთა პროგრამა", NameEn: "Veterans Program", NameRu: "Программа ветеранов", Category: CategoryState},
	{ID: "ins-municipal-tbilisi", Code: "MTB", NameKa: "თბილისის მერიის პროგრამა", NameEn: "Tbilisi Municipal Program", NameRu: "Муниципальная программа Тбилиси", Category: CategoryState},
	{ID: "ins-municipal-batumi", Code: "MBA", NameKa: "ბათუმის მერიის პროგრამა", NameEn: "Batumi Municipal Program", NameRu: "Муниципальная программа Батуми", Category: CategoryState},
	{ID: "ins-railway", Code: "RLW", NameKa: "საქართველოს რკინიგზა", NameEn: "Georgian Railway", NameRu: "Грузинская железная дорога", Category: CategoryCorporate},
	{ID: "ins-energo", Code: "ENG", NameKa: "ენერგო-პრო ჯორჯია", NameEn: "Energo-Pro Georgia", NameRu: "Энерго-Про Джорджия", Category: CategoryCorporate},
	{ID: "ins-magti", Code: "MGT", NameKa: "მაგთიკომი", NameEn: "MagtiCom", NameRu: "Магтиком", Category: CategoryCorporate},
	{ID: "ins-silknet", Code: "SLK", NameKa: "სილქნეტი", NameEn: "Silknet", NameRu: "Силкнет", Category: CategoryCorporate},
	{ID: "ins-bog", Code: "BOG", NameKa: "საქართველოს ბანკი", NameEn: "Bank of Georgia", NameRu: "Банк Грузии", Category: CategoryCorporate},
	{ID: "ins-wissol", Code: "WSL", NameKa: "ვისოლ ჯგუფი", NameEn: "Wissol Group", NameRu: "Виссол Групп", Category: CategoryCorporate},
	{ID: "ins-gwp", Code: "GWP", NameKa: "ჯორჯიან უოთერ ენდ ფაუერი", NameEn: "Georgian Water and Power", NameRu: "Джорджиан Уотер энд Пауэр", Category: CategoryCorporate},
	{ID: "ins-standard", Code: "STD", NameKa: "სტანდარტ დაზღვევა", NameEn: "Standard Insurance", NameRu: "Стандарт Страхование", Category: CategoryPrivate},
	{ID: "ins-new-vision", Code: "NVI", NameKa: "ნიუ ვიჟენ დაზღვევა", NameEn: "New Vision Insurance", NameRu: "Нью Вижн Страхование", Category: CategoryPrivate},
	{ID: "ins-tao", Code: "TAO", NameKa: "ტაო დაზღვევა", NameEn: "Tao Insurance", NameRu: "Тао Страхование", Category: CategoryPrivate},
	{ID: "ins-vienna", Code: "VIG", NameKa: "ვენის სადაზღვევო ჯგუფი", NameEn: "Vienna Insurance Group Georgia", NameRu: "Венская страховая группа Грузия", Category: CategoryPrivate},
	{ID: "ins-partner", Code: "PRT", NameKa: "პარტნიორი", NameEn: "Partner", NameRu: "Партниори", Category: CategoryPrivate},
	{ID: "ins-archimedes", Code: "ARC", NameKa: "არქიმედეს გლობალ ჯორჯია", NameEn: "Archimedes Global Georgia", NameRu: "Архимедес Глобал Джорджия", Category: CategoryPrivate},
	{ID: "ins-qartuli-dazgveva", Code: "QDG", NameKa: "ქართული დაზღვევა", NameEn: "Georgian Insurance", NameRu: "Грузинское страхование", Category: CategoryPrivate},
	{ID: "ins-liberty", Code: "LIB", NameKa: "ლიბერთი დაზღვევა", NameEn: "Liberty Insurance", NameRu: "Либерти Страхование", Category: CategoryPrivate},
	{ID: "ins-crystal", Code: "CRY", NameKa: "კრისტალ დაზღვევა", NameEn: "Crystal Insurance", NameRu: "Кристал Страхование", Category: CategoryPrivate},
	{ID: "ins-caucasus", Code: "CAU", NameKa: "კავკასიის დაზღვევა", NameEn: "Caucasus Insurance", NameRu: "Кавказское страхование", Category: CategoryPrivate},
	{ID: "ins-mediclub", Code: "MCL", NameKa: "მედიკლაბ ჯორჯია", NameEn: "MediClub Georgia", NameRu: "МедиКлаб Джорджия", Category: CategoryPrivate},
	{ID: "ins-curatio", Code: "CUR", NameKa: "კურაციო", NameEn: "Curatio", NameRu: "Курацио", Category: CategoryPrivate},
	{ID: "ins-evex", Code: "EVX", NameKa: "ევექსის დაზღვევა", NameEn: "Evex Insurance", NameRu: "Эвекс Страхование", Category: CategoryPrivate},
	{ID: "ins-children-program", Code: "CHP", NameKa: "ბავშვთა სახელმწიფო პროგრამა", NameEn: "State Children Program", NameRu: "Государственная детская программа", Category: CategoryState},
	{ID: "ins-maternity-program", Code: "MAT", NameKa: "დედათა და ბავშვთა პროგრამა", NameEn: "Maternal and Child Program", NameRu: "Программа матери и ребёнка", Category: CategoryState},
	{ID: "ins-oncology-program", Code: "ONC", NameKa: "ონკოლოგიური პროგრამა", NameEn: "State Oncology Program", NameRu: "Государственная онкологическая программа", Category: CategoryState},
	{ID: "ins-dialysis-program", Code: "DIA", NameKa: "დიალიზის პროგრამა", NameEn: "State Dialysis Program", NameRu: "Государственная программа диализа", Category: CategoryState},
	{ID: "ins-tb-program", Code: "TBP", NameKa: "ტუბერკულოზის პროგრამა", NameEn: "Tuberculosis Program", NameRu: "Программа туберкулёза", Category: CategoryState},
	{ID: "ins-hiv-program", Code: "HIV", NameKa: "აივ/შიდსის პროგრამა", NameEn: "HIV/AIDS Program", NameRu: "Программа ВИЧ/СПИД", Category: CategoryState},
	{ID: "ins-hepatitis-program", Code: "HEP", NameKa: "C ჰეპატიტის პროგრამა", NameEn: "Hepatitis C Program", NameRu: "Программа гепатита C", Category: CategoryState},
	{ID: "ins-idp-program", Code: "IDP", NameKa: "დევნილთა პროგრამა", NameEn: "IDP Program", NameRu: "Программа ВПЛ", Category: CategoryState},
	{ID: "ins-municipal-kutaisi", Code: "MKU", NameKa: "ქუთაისის მერიის პროგრამა", NameEn: "Kutaisi Municipal Program", NameRu: "Муниципальная программа Кутаиси", Category: CategoryState},
	{ID: "ins-municipal-rustavi", Code: "MRU", NameKa: "რუსთავის მერიის პროგრამა", NameEn: "Rustavi Municipal Program", NameRu: "Муниципальная программа Рустави", Category: CategoryState},
	{ID: "ins-mod", Code: "MOD", NameKa: "თავდაცვის სამინისტრო", NameEn: "Ministry of Defence Program", NameRu: "Программа Минобороны", Category: CategoryState},
	{ID: "ins-mia", Code: "MIA", NameKa: "შინაგან საქმეთა სამინისტრო", NameEn: "Ministry of Internal Affairs Program", NameRu: "Программа МВД", Category: CategoryState},
	{ID: "ins-tbc-bank", Code: "TBB", NameKa: "თიბისი ბანკი", NameEn: "TBC Bank", NameRu: "ТиБиСи Банк", Category: CategoryCorporate},
	{ID: "ins-telasi", Code: "TEL", NameKa: "თელასი", NameEn: "Telasi", NameRu: "Теласи", Category: CategoryCorporate},
	{ID: "ins-rmg", Code: "RMG", NameKa: "არემჯი ჯგუფი", NameEn: "RMG Group", NameRu: "РМГ Групп", Category: CategoryCorporate},
	{ID: "ins-poti-port", Code: "PTP", NameKa: "ფოთის პორტი", NameEn: "Poti Sea Port", NameRu: "Порт Поти", Category: CategoryCorporate},
	{ID: "ins-georgian-airways", Code: "GAW", NameKa: "ჯორჯიან ეარვეისი", NameEn: "Georgian Airways", NameRu: "Джорджиан Эйрвейс", Category: CategoryCorporate},
	{ID: "ins-liberty-bank", Code: "LBB", NameKa: "ლიბერთი ბანკი", NameEn: "Liberty Bank", NameRu: "Либерти Банк", Category: CategoryCorporate},
}

var companiesByID = func() map[string]InsuranceCompany {
	m := make(map[string]InsuranceCompany, len(Companies))
	for _, c := range Companies {
		m[c.ID] = c
	}
	return m
}()

// CompanyByID resolves a catalog entry by its Organization ID.
func CompanyByID(id string) (InsuranceCompany, bool) {
	c, ok := companiesByID[id]
	return c, ok
}
