package fallback

const (
	CutoffResponse = "MHT-CET cutoffs vary by college, branch, and category. Top colleges like VJTI, COEP, and MIT typically have cutoffs in the range of 500-5000 ranks for open category students. Government colleges generally have lower cutoffs than private ones. For personalized cutoff information, I recommend using our College Comparator to see detailed data for specific colleges."

	ReservationResponse = "Maharashtra follows reservation policies with SC (13%), ST (7%), VJDT (3%), NT (3.5%), OBC/SEBC (19%), and EWS (10%) quotas. Additionally, there's a 50% reservation for students with Maharashtra domicile. Each category has separate cutoffs, typically lower than the open category. Reserved category students also get fee concessions in government colleges."

	GovernmentResponse = "Government colleges like VJTI, COEP, VNIT, and Government College of Engineering offer excellent education at lower fees (₹80,000-₹2L annually). Benefits include: lower fees, better ROI, strong alumni network, good placements, and reservation benefits. Private colleges like MIT, Vishwakarma, and Symbiosis offer modern infrastructure, industry connections, but have higher fees (₹3-10L annually)."

	AdmissionResponse = "MHT-CET admission process: 1) Register for MHT-CET exam, 2) Take the exam (PCM/PCB), 3) Check results and calculate percentile, 4) Participate in CAP rounds (Centralized Admission Process), 5) Fill choice form with preferred colleges, 6) Document verification, 7) Seat allotment, 8) Accept seat and pay fees. Important: Keep all certificates ready (Domicile, Caste, Income, etc.)."

	VJTIResponse = "VJTI (Veermata Jijabai Technological Institute) is one of Mumbai's premier government engineering colleges. Key features: Established 1887, Government college with low fees (₹80K/year), Strong placements (average 8-12 LPA), Top branches: Computer, IT, Electronics. Typical cutoff: 500-3000 rank for Computer Science (Open category). Great ROI and strong alumni network. Use our College Comparator to compare VJTI with other colleges!"

	MITResponse = "MIT College of Engineering, Pune is a top private college. Features: Established 1983, Private college (₹3.5-4L/year), Excellent infrastructure and facilities, Good placements (average 6-8 LPA), Strong industry connections. Popular branches: Computer, IT, Mechanical, Electronics. Cutoff ranges from 5000-20000 depending on branch and category."

	ScholarshipResponse = "Scholarships available: 1) Post-Matric Scholarship for SC/ST/OBC students (income < ₹8L), 2) EBC Scholarship for economically backward students, 3) Minority scholarships, 4) Merit-based college scholarships, 5) National Scholarships Portal (NSP) schemes, 6) State government schemes. Most government colleges also offer fee waivers for reserved categories."

	CareerResponse = "Popular engineering career paths: 1) Software Engineering (highest demand, 5-15 LPA), 2) Data Science/AI/ML (growing field, 6-20 LPA), 3) Core Engineering (Mechanical, Civil, Electrical, 4-8 LPA), 4) Higher studies (M.Tech/MBA/MS abroad), 5) Government jobs (GATE/PSU/ESE), 6) Entrepreneurship. Consider your interests, aptitude, and market demand when choosing."
)

const DefaultMessage = `Thank you for your question! I can help you with:

• College comparisons and recommendations
• MHT-CET cutoffs and admission procedures
• Information about top colleges (VJTI, MIT, COEP, VNIT, etc.)
• Reservation categories and quotas
• Career guidance and course selection

For detailed college comparisons, I recommend using our College Comparator feature where you can compare fees, facilities, placements, and more across 700+ Maharashtra colleges.

Could you please be more specific about what you'd like to know? For example:
- "What's the cutoff for Computer Science at VJTI?"
- "Tell me about OBC reservation quotas"
- "Compare government and private colleges"`

// counselorEntries is in priority order: "cutoff" outranks "vjti", and so on.
var counselorEntries = []Entry{
	{Keyword: "cutoff", Response: CutoffResponse},
	{Keyword: "reservation", Response: ReservationResponse},
	{Keyword: "government", Response: GovernmentResponse},
	{Keyword: "admission", Response: AdmissionResponse},
	{Keyword: "vjti", Response: VJTIResponse},
	{Keyword: "mit", Response: MITResponse},
	{Keyword: "scholarship", Response: ScholarshipResponse},
	{Keyword: "career", Response: CareerResponse},
}
